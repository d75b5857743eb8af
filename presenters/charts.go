package presenters

import (
	"github.com/kendall-kelly/ecom-reports/report"
)

// NoDataText is shown in place of a chart whose aggregate is empty
const NoDataText = "No data available"

// Figure is a chart description in the Plotly figure JSON shape
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one data series of a figure
type Trace struct {
	Type         string        `json:"type"`
	Name         string        `json:"name,omitempty"`
	X            []interface{} `json:"x,omitempty"`
	Y            []interface{} `json:"y,omitempty"`
	Labels       []string      `json:"labels,omitempty"`
	Values       []interface{} `json:"values,omitempty"`
	Orientation  string        `json:"orientation,omitempty"`
	Hole         float64       `json:"hole,omitempty"`
	Text         []string      `json:"text,omitempty"`
	TextPosition string        `json:"textposition,omitempty"`
	TextInfo     string        `json:"textinfo,omitempty"`
	HoverInfo    string        `json:"hoverinfo,omitempty"`
	Marker       *Marker       `json:"marker,omitempty"`
}

// Marker styles the bars or slices of a trace
type Marker struct {
	Color      interface{} `json:"color,omitempty"`
	Colors     []string    `json:"colors,omitempty"`
	ColorScale string      `json:"colorscale,omitempty"`
}

// Layout holds figure-level settings
type Layout struct {
	Title       Title        `json:"title"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	BarMode     string       `json:"barmode,omitempty"`
	ShowLegend  bool         `json:"showlegend"`
	AutoSize    bool         `json:"autosize"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Title is a figure or axis title
type Title struct {
	Text string `json:"text"`
}

// Axis configures one axis
type Axis struct {
	Title         Title   `json:"title"`
	TickAngle     float64 `json:"tickangle,omitempty"`
	CategoryOrder string  `json:"categoryorder,omitempty"`
	Visible       *bool   `json:"visible,omitempty"`
}

// Annotation is free text placed on the figure
type Annotation struct {
	Text      string  `json:"text"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	ShowArrow bool    `json:"showarrow"`
}

var statusColors = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8"}

var paymentColors = []string{"#67001f", "#b2182b", "#d6604d", "#f4a582", "#fddbc7", "#d1e5f0", "#92c5de", "#4393c3", "#2166ac", "#053061"}

// IsEmpty reports whether the figure carries no data points
func (f Figure) IsEmpty() bool {
	for _, t := range f.Data {
		if len(t.X) > 0 || len(t.Y) > 0 || len(t.Values) > 0 {
			return false
		}
	}
	return true
}

// emptyFigure is the placeholder for an aggregate with no groups
func emptyFigure(title string) Figure {
	hidden := false
	return Figure{
		Data: []Trace{},
		Layout: Layout{
			Title:    Title{Text: title},
			XAxis:    &Axis{Visible: &hidden},
			YAxis:    &Axis{Visible: &hidden},
			AutoSize: true,
			Annotations: []Annotation{{
				Text: NoDataText, XRef: "paper", YRef: "paper", X: 0.5, Y: 0.5,
			}},
		},
	}
}

func pieFigure(title string, entries []report.Entry[int], hole float64, colors []string) Figure {
	if len(entries) == 0 {
		return emptyFigure(title)
	}
	labels := make([]string, len(entries))
	values := make([]interface{}, len(entries))
	for i, e := range entries {
		labels[i] = e.Key
		values[i] = e.Value
	}
	return Figure{
		Data: []Trace{{
			Type:         "pie",
			Labels:       labels,
			Values:       values,
			Hole:         hole,
			TextPosition: "inside",
			TextInfo:     "percent+label",
			HoverInfo:    "skip",
			Marker:       &Marker{Colors: colors},
		}},
		Layout: Layout{Title: Title{Text: title}, ShowLegend: true, AutoSize: true},
	}
}

// ShippingStatusChart is a pie of orders per shipping status
func ShippingStatusChart(entries []report.Entry[int]) Figure {
	return pieFigure("Shipping Status Distribution", entries, 0, statusColors)
}

// PaymentMethodsChart is a donut of distinct orders per payment method
func PaymentMethodsChart(entries []report.Entry[int]) Figure {
	return pieFigure("Payment Methods Distribution", entries, 0.4, paymentColors)
}

// TopProductsChart is a horizontal bar of revenue per product
func TopProductsChart(entries []report.Entry[float64]) Figure {
	const title = "Top 10 Products by Revenue"
	if len(entries) == 0 {
		return emptyFigure(title)
	}
	x := make([]interface{}, len(entries))
	y := make([]interface{}, len(entries))
	text := make([]string, len(entries))
	for i, e := range entries {
		x[i] = e.Value
		y[i] = e.Key
		text[i] = FormatWholeCurrency(e.Value)
	}
	return Figure{
		Data: []Trace{{
			Type:         "bar",
			X:            x,
			Y:            y,
			Orientation:  "h",
			Text:         text,
			TextPosition: "outside",
			HoverInfo:    "skip",
			Marker:       &Marker{Color: "#1f4788"},
		}},
		Layout: Layout{
			Title:    Title{Text: title},
			XAxis:    &Axis{Title: Title{Text: "Total Revenue (" + CurrencySymbol + ")"}},
			YAxis:    &Axis{Title: Title{Text: "Product Name"}, CategoryOrder: "total ascending"},
			AutoSize: true,
		},
	}
}

func columnFigure(title, xTitle, yTitle, scale string, keys []string, values []float64, text []string) Figure {
	x := make([]interface{}, len(keys))
	y := make([]interface{}, len(values))
	for i := range keys {
		x[i] = keys[i]
		y[i] = values[i]
	}
	return Figure{
		Data: []Trace{{
			Type:         "bar",
			X:            x,
			Y:            y,
			Text:         text,
			TextPosition: "outside",
			HoverInfo:    "skip",
			Marker:       &Marker{Color: values, ColorScale: scale},
		}},
		Layout: Layout{
			Title:    Title{Text: title},
			XAxis:    &Axis{Title: Title{Text: xTitle}, TickAngle: -45},
			YAxis:    &Axis{Title: Title{Text: yTitle}},
			AutoSize: true,
		},
	}
}

// CategorySalesChart is a column chart of revenue per category
func CategorySalesChart(entries []report.Entry[float64]) Figure {
	const title = "Sales by Category"
	if len(entries) == 0 {
		return emptyFigure(title)
	}
	keys := make([]string, len(entries))
	values := make([]float64, len(entries))
	text := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
		values[i] = e.Value
		text[i] = FormatWholeCurrency(e.Value)
	}
	return columnFigure(title, "Category", "Revenue ("+CurrencySymbol+")", "Blues", keys, values, text)
}

// CityOrdersChart is a column chart of distinct orders per city
func CityOrdersChart(entries []report.Entry[int]) Figure {
	const title = "Top 10 Cities by Number of Orders"
	if len(entries) == 0 {
		return emptyFigure(title)
	}
	keys := make([]string, len(entries))
	values := make([]float64, len(entries))
	text := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
		values[i] = float64(e.Value)
		text[i] = FormatCount(e.Value)
	}
	return columnFigure(title, "City", "Number of Orders", "Viridis", keys, values, text)
}

// CourierPerformanceChart groups total and delivered shipments per courier
func CourierPerformanceChart(stats []report.CourierStat) Figure {
	const title = "Courier Performance (Total Orders vs Delivered)"
	if len(stats) == 0 {
		return emptyFigure(title)
	}
	couriers := make([]interface{}, len(stats))
	total := make([]interface{}, len(stats))
	delivered := make([]interface{}, len(stats))
	totalText := make([]string, len(stats))
	deliveredText := make([]string, len(stats))
	for i, s := range stats {
		couriers[i] = s.Courier
		total[i] = s.Total
		delivered[i] = s.Delivered
		totalText[i] = FormatCount(s.Total)
		deliveredText[i] = FormatCount(s.Delivered)
	}
	return Figure{
		Data: []Trace{
			{Type: "bar", Name: "Total Orders", X: couriers, Y: total, Text: totalText, TextPosition: "outside", HoverInfo: "skip", Marker: &Marker{Color: "#4ECDC4"}},
			{Type: "bar", Name: "Delivered", X: couriers, Y: delivered, Text: deliveredText, TextPosition: "outside", HoverInfo: "skip", Marker: &Marker{Color: "#45B7D1"}},
		},
		Layout: Layout{
			Title:      Title{Text: title},
			XAxis:      &Axis{Title: Title{Text: "Courier Service"}},
			YAxis:      &Axis{Title: Title{Text: "Number of Orders"}},
			BarMode:    "group",
			ShowLegend: true,
			AutoSize:   true,
		},
	}
}
