package presenters

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	"github.com/gomutex/godocx/docx"
)

// A4 with 2 cm margins leaves roughly 6.5 inches of content width
const docxContentWidth = 6.5

const docxTableStyle = "LightList-Accent1"

// DOCXWriter renders a Document as a Word file
type DOCXWriter struct{}

// NewDOCXWriter creates a DOCX document writer
func NewDOCXWriter() *DOCXWriter {
	return &DOCXWriter{}
}

// Extension returns the file extension of DOCX output
func (DOCXWriter) Extension() string {
	return ".docx"
}

// Write renders doc as a DOCX package into w. Chart images are staged in a
// temporary directory because godocx embeds pictures from files.
func (d DOCXWriter) Write(w io.Writer, doc Document) error {
	dir, err := os.MkdirTemp("", "ecom-docx-*")
	if err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	defer os.RemoveAll(dir)

	document, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("write docx: %w", err)
	}

	if _, err := document.AddHeading(doc.Title, 0); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	document.AddParagraph("Generated " + doc.GeneratedAt.Format("2006-01-02 15:04:05"))

	if err := docxHeading(document, "Summary Statistics"); err != nil {
		return err
	}
	stats := Table{Header: []string{"Metric", "Value"}}
	for _, s := range doc.Stats {
		stats.Rows = append(stats.Rows, []string{s.Label, s.Value})
	}
	docxTable(document, stats)

	if err := docxHeading(document, "Shipping Status Breakdown"); err != nil {
		return err
	}
	if len(doc.Status.Rows) == 0 {
		document.AddParagraph(NoDataText)
	} else {
		docxTable(document, doc.Status)
	}

	for i, c := range doc.Charts {
		if len(c.PNG) == 0 {
			continue
		}
		if err := docxChart(document, dir, i+1, c); err != nil {
			return err
		}
	}

	document.AddPageBreak()
	if err := docxHeading(document, fmt.Sprintf("Sample Data (first %d rows)", len(doc.Sample.Rows))); err != nil {
		return err
	}
	docxTable(document, doc.Sample)

	path := filepath.Join(dir, "report.docx")
	if err := document.SaveTo(path); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func docxHeading(document *docx.RootDoc, text string) error {
	if _, err := document.AddHeading(text, 1); err != nil {
		return fmt.Errorf("write docx heading %q: %w", text, err)
	}
	return nil
}

func docxTable(document *docx.RootDoc, t Table) {
	tbl := document.AddTable()
	tbl.Style(docxTableStyle)
	header := tbl.AddRow()
	for _, h := range t.Header {
		header.AddCell().AddParagraph(h)
	}
	for _, row := range t.Rows {
		r := tbl.AddRow()
		for _, cell := range row {
			r.AddCell().AddParagraph(cell)
		}
	}
}

// docxChart adds a page with the chart scaled to the content width
func docxChart(document *docx.RootDoc, dir string, n int, c ChartImage) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(c.PNG))
	if err != nil {
		return fmt.Errorf("embed chart %q: %w", c.Title, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("chart%d.png", n))
	if err := os.WriteFile(path, c.PNG, 0o600); err != nil {
		return fmt.Errorf("embed chart %q: %w", c.Title, err)
	}

	document.AddPageBreak()
	if err := docxHeading(document, c.Title); err != nil {
		return err
	}
	height := docxContentWidth * float64(cfg.Height) / float64(cfg.Width)
	if _, err := document.AddPicture(path, units.Inch(docxContentWidth), units.Inch(height)); err != nil {
		return fmt.Errorf("embed chart %q: %w", c.Title, err)
	}
	return nil
}
