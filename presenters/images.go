package presenters

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/kendall-kelly/ecom-reports/models"
	"github.com/kendall-kelly/ecom-reports/report"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Chart image dimensions in pixels
const (
	ImageWidth  = 1000
	ImageHeight = 600
)

const (
	barWidth   = 60
	barSpacing = 30
)

// PiePNG draws a pie of the entries. An empty aggregate draws a
// placeholder and returns an error matching models.ErrEmptyAggregate.
func PiePNG(w io.Writer, title string, entries []report.Entry[int]) error {
	if len(entries) == 0 {
		return emptyAggregate(w, title)
	}

	values := make([]chart.Value, 0, len(entries))
	for i, e := range entries {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%s)", e.Key, FormatCount(e.Value)),
			Value: float64(e.Value),
			Style: chart.Style{FillColor: paletteColor(statusColors, i)},
		})
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  ImageWidth,
		Height: ImageHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 60, Bottom: 20},
		},
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

// BarPNG draws a column chart of the entries with currency labels.
// An empty aggregate draws a placeholder and returns an error matching
// models.ErrEmptyAggregate.
func BarPNG(w io.Writer, title string, entries []report.Entry[float64]) error {
	if len(entries) == 0 {
		return emptyAggregate(w, title)
	}

	top := 0.0
	bars := make([]chart.Value, 0, len(entries))
	for _, e := range entries {
		if e.Value > top {
			top = e.Value
		}
		bars = append(bars, chart.Value{
			Label: e.Key,
			Value: e.Value,
			Style: chart.Style{FillColor: drawing.ColorFromHex("1f4788"), StrokeColor: drawing.ColorFromHex("1f4788")},
		})
	}
	if top <= 0 {
		top = 1
	}

	width := ImageWidth
	if need := len(bars)*(barWidth+barSpacing) + 200; need > width {
		width = need
	}

	bar := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     ImageHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatWholeCurrency(f)
				}
				return ""
			},
		},
		Bars: bars,
	}
	return bar.Render(chart.PNG, w)
}

func paletteColor(palette []string, i int) drawing.Color {
	hex := palette[i%len(palette)]
	return drawing.ColorFromHex(hex[1:])
}

func emptyAggregate(w io.Writer, title string) error {
	if err := PlaceholderPNG(w, title); err != nil {
		return err
	}
	return fmt.Errorf("%s: %w", title, models.ErrEmptyAggregate)
}

// PlaceholderPNG draws a blank chart frame with the title and a
// "No data available" notice
func PlaceholderPNG(w io.Writer, title string) error {
	img := image.NewRGBA(image.Rect(0, 0, ImageWidth, ImageHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	border := color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	for x := 0; x < ImageWidth; x++ {
		img.Set(x, 0, border)
		img.Set(x, ImageHeight-1, border)
	}
	for y := 0; y < ImageHeight; y++ {
		img.Set(0, y, border)
		img.Set(ImageWidth-1, y, border)
	}

	drawCentered(img, title, 40, color.Black)
	drawCentered(img, NoDataText, ImageHeight/2, color.Gray{Y: 0x66})

	return png.Encode(w, img)
}

func drawCentered(img draw.Image, text string, y int, c color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}
	width := d.MeasureString(text).Round()
	d.Dot = fixed.P((img.Bounds().Dx()-width)/2, y)
	d.DrawString(text)
}

// RenderPNG runs draw into a buffer and returns the image bytes.
// An empty aggregate still yields the placeholder bytes together with
// its error.
func RenderPNG(render func(io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	err := render(&buf)
	return buf.Bytes(), err
}
