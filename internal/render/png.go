package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"PriceChart/internal/chart"
)

var (
	tooltipBg     = color.RGBA{R: 255, G: 255, B: 255, A: 235}
	tooltipBorder = color.RGBA{R: 153, G: 153, B: 153, A: 255}
)

// stampTooltip decodes the rendered raster, draws the tooltip box and its two text lines
// with a fixed bitmap face, and re-encodes the result to w.
func stampTooltip(w io.Writer, raster io.Reader, c *chart.Context, tip chart.Tooltip) error {
	img, err := png.Decode(raster)
	if err != nil {
		return fmt.Errorf("decode raster: %w", err)
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: rgba, Src: image.NewUniform(color.Black), Face: face}

	lines := tooltipLines(tip.Record.Close, tip.Record.Date)
	widths := make([]int, len(lines))
	for i, l := range lines {
		widths[i] = dr.MeasureString(l).Ceil()
	}
	lineH := face.Metrics().Height.Ceil() + 2
	rect := tooltipRect(c, tip, widths, lineH, b.Dx(), b.Dy()).Add(b.Min)

	draw.Draw(rgba, rect, image.NewUniform(tooltipBg), image.Point{}, draw.Over)
	border := image.NewUniform(tooltipBorder)
	for _, edge := range []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1),
		image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y),
		image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y),
	} {
		draw.Draw(rgba, edge, border, image.Point{}, draw.Src)
	}

	ascent := face.Metrics().Ascent.Ceil()
	for i, l := range lines {
		dr.Dot = fixed.Point26_6{
			X: fixed.I(rect.Min.X + tooltipPad),
			Y: fixed.I(rect.Min.Y + tooltipPad + ascent + i*lineH),
		}
		dr.DrawString(l)
	}

	if err := png.Encode(w, rgba); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
