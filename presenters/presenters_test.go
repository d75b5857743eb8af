package presenters

import (
	"time"

	"github.com/kendall-kelly/ecom-reports/models"
	"github.com/kendall-kelly/ecom-reports/report"
)

func fact(order uint, customer, city, product, category string, price float64, status, courier string, day int) models.FactRow {
	return models.FactRow{
		CustomerName:   customer,
		City:           city,
		State:          "MH",
		OrderID:        order,
		OrderDate:      models.NewDate(2024, time.March, day),
		PaymentMethod:  "UPI",
		ProductName:    product,
		Category:       category,
		Quantity:       1,
		ItemPrice:      price,
		TotalAmount:    price,
		ShippingStatus: status,
		DeliveryDate:   models.NewDate(2024, time.March, day+2),
		Courier:        courier,
	}
}

func sampleFacts() []models.FactRow {
	return []models.FactRow{
		fact(1, "Asha Rao", "Mumbai", "Laptop", "Electronics", 50000, models.StatusDelivered, "BlueDart", 5),
		fact(2, "Vikram Shah", "Pune", "Novel & Notes", "Books", 500, models.StatusInTransit, "Delhivery", 6),
		fact(3, "Meera <Iyer>", "Chennai", "Kettle", "Home", 1500, models.StatusDelivered, "BlueDart", 7),
	}
}

func sampleReport() *report.Report {
	return report.Compute(sampleFacts())
}
