package presenters

import (
	"io"
	"time"

	"github.com/kendall-kelly/ecom-reports/report"
)

// SampleSize is the number of fact rows shown in document samples
const SampleSize = 20

// Stat is one labelled summary figure
type Stat struct {
	Label string
	Value string
}

// ChartImage is a rendered chart embedded in a document
type ChartImage struct {
	Title string
	PNG   []byte
}

// Document is the content of the paginated report: title, summary
// statistics, status breakdown, chart images and a sample of fact rows
type Document struct {
	Title       string
	GeneratedAt time.Time
	Stats       []Stat
	Status      Table
	Charts      []ChartImage
	Sample      Table
}

// DocumentWriter renders a Document in one output format
type DocumentWriter interface {
	Write(w io.Writer, doc Document) error
	Extension() string
}

// SummaryStats renders the summary as labelled values
func SummaryStats(s report.Summary) []Stat {
	return []Stat{
		{Label: "Total Records", Value: FormatCount(s.TotalRecords)},
		{Label: "Unique Customers", Value: FormatCount(s.TotalCustomers)},
		{Label: "Unique Orders", Value: FormatCount(s.TotalOrders)},
		{Label: "Unique Products", Value: FormatCount(s.TotalProducts)},
		{Label: "Total Revenue", Value: FormatCurrency(s.TotalRevenue)},
	}
}

// NewDocument lays out a computed report as a Document
func NewDocument(r *report.Report, charts []ChartImage, generatedAt time.Time) Document {
	sample := r.Facts
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	return Document{
		Title:       "E-Commerce Sales Report",
		GeneratedAt: generatedAt,
		Stats:       SummaryStats(r.Summary),
		Status:      StatusTable(r.ShippingStatus),
		Charts:      charts,
		Sample:      SampleTable(sample),
	}
}
