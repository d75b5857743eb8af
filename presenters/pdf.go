package presenters

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDFWriter renders a Document as an A4 PDF
type PDFWriter struct{}

// NewPDFWriter creates a PDF document writer
func NewPDFWriter() *PDFWriter {
	return &PDFWriter{}
}

// Extension returns the file extension of PDF output
func (PDFWriter) Extension() string {
	return ".pdf"
}

var sampleWidths = []float64{14, 30, 22, 36, 12, 26, 24, 26}

// Write renders doc as a PDF into w
func (p PDFWriter) Write(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("ecom-reports", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string {
		return tr(strings.ReplaceAll(s, CurrencySymbol, "Rs. "))
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	contentW := pageW - left - right

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(31, 71, 136)
	pdf.CellFormat(0, 12, text(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, "Generated "+doc.GeneratedAt.Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	heading := func(s string) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(31, 71, 136)
		pdf.CellFormat(0, 10, text(s), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	table := func(t Table, widths []float64, size float64) {
		pdf.SetFont("Helvetica", "B", size)
		pdf.SetFillColor(31, 71, 136)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range t.Header {
			pdf.CellFormat(widths[i], 7, text(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", size)
		pdf.SetTextColor(0, 0, 0)
		for n, row := range t.Rows {
			fill := n%2 == 1
			pdf.SetFillColor(240, 244, 250)
			for i, cell := range row {
				pdf.CellFormat(widths[i], 6, fit(pdf, text(cell), widths[i]-2), "1", 0, "L", fill, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	heading("Summary Statistics")
	stats := Table{Header: []string{"Metric", "Value"}}
	for _, s := range doc.Stats {
		stats.Rows = append(stats.Rows, []string{s.Label, s.Value})
	}
	table(stats, []float64{contentW / 2, contentW / 2}, 10)

	heading("Shipping Status Breakdown")
	if len(doc.Status.Rows) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 6, NoDataText, "", 1, "L", false, 0, "")
		pdf.Ln(4)
	} else {
		table(doc.Status, []float64{contentW / 2, contentW / 2}, 10)
	}

	for i, c := range doc.Charts {
		if len(c.PNG) == 0 {
			continue
		}
		name := fmt.Sprintf("chart-%d", i)
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(c.PNG))
		if info == nil || pdf.Err() {
			return fmt.Errorf("embed chart %q: %w", c.Title, pdf.Error())
		}
		h := contentW * info.Height() / info.Width()
		if pdf.GetY()+h+10 > pageH-bottom {
			pdf.AddPage()
		}
		heading(c.Title)
		pdf.ImageOptions(name, left, pdf.GetY(), contentW, h, true, opts, 0, "")
		pdf.Ln(4)
	}

	pdf.AddPage()
	heading(fmt.Sprintf("Sample Data (first %d rows)", len(doc.Sample.Rows)))
	table(doc.Sample, sampleWidths, 8)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// fit shortens an already translated single-byte string with an ellipsis
// until it is no wider than width
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
