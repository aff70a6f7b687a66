// Package render draws a chart.Context and its hover tooltip as SVG or PNG.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"PriceChart/internal/chart"
	"PriceChart/internal/scale"
)

// Format selects the output encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrInvalidColor  = errors.New("invalid hex color")
)

const (
	fontSize     = 10.0
	tickLength   = 6
	tooltipPad   = 6
	dotStroke    = 2.0
	axisLabelGap = 12
)

// Options controls the look of the rendered chart.
type Options struct {
	Format      Format
	LineColor   string
	DotColor    string
	StrokeWidth float64
	DotRadius   float64
	XLabel      string
	YLabel      string
	TickCount   int
}

// DefaultOptions returns the stock styling: a slate line with a coral hover dot.
func DefaultOptions() Options {
	return Options{
		Format:      FormatSVG,
		LineColor:   "#30475e",
		DotColor:    "#fc8781",
		StrokeWidth: 2,
		DotRadius:   5,
		XLabel:      "Date",
		YLabel:      "Price",
		TickCount:   scale.DefaultTickCount,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Format == "" {
		o.Format = def.Format
	}
	if o.LineColor == "" {
		o.LineColor = def.LineColor
	}
	if o.DotColor == "" {
		o.DotColor = def.DotColor
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = def.StrokeWidth
	}
	if o.DotRadius <= 0 {
		o.DotRadius = def.DotRadius
	}
	if o.TickCount <= 0 {
		o.TickCount = def.TickCount
	}
	return o
}

// ParseColor accepts #rgb or #rrggbb, with or without the leading hash.
func ParseColor(s string) (drawing.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 3 && len(hex) != 6 {
		return drawing.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return drawing.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	return drawing.ColorFromHex(hex), nil
}

// Render writes the chart, and the tooltip when it is visible, to w.
func Render(w io.Writer, c *chart.Context, tip chart.Tooltip, opts Options) error {
	opts = opts.withDefaults()

	var provider gochart.RendererProvider
	switch opts.Format {
	case FormatSVG:
		provider = gochart.SVG
	case FormatPNG:
		provider = gochart.PNG
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
	lineColor, err := ParseColor(opts.LineColor)
	if err != nil {
		return fmt.Errorf("line color: %w", err)
	}
	dotColor, err := ParseColor(opts.DotColor)
	if err != nil {
		return fmt.Errorf("dot color: %w", err)
	}

	width, height := int(math.Round(c.Dimensions.Width)), int(math.Round(c.Dimensions.Height))
	r, err := provider(width, height)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	d := &drawer{r: r, c: c, opts: opts, font: font, width: width, height: height}
	d.background()
	d.line(lineColor)
	d.xAxis()
	d.yAxis()
	if tip.Visible {
		d.dot(tip, dotColor)
		if opts.Format == FormatSVG {
			d.tooltip(tip)
		}
	}

	if opts.Format == FormatPNG && tip.Visible {
		var buf bytes.Buffer
		if err := r.Save(&buf); err != nil {
			return fmt.Errorf("save png: %w", err)
		}
		return stampTooltip(w, &buf, c, tip)
	}
	if err := r.Save(w); err != nil {
		return fmt.Errorf("save %s: %w", opts.Format, err)
	}
	return nil
}

type drawer struct {
	r             gochart.Renderer
	c             *chart.Context
	opts          Options
	font          *truetype.Font
	width, height int
}

// px translates a drawable-area coordinate to the canvas.
func (d *drawer) px(x, y float64) (int, int) {
	m := d.c.Dimensions.Margin
	return int(math.Round(x + m)), int(math.Round(y + m))
}

func (d *drawer) resetText() {
	d.r.ResetStyle()
	d.r.SetFont(d.font)
	d.r.SetFontSize(fontSize)
	d.r.SetFontColor(drawing.ColorBlack)
}

func (d *drawer) background() {
	d.r.ResetStyle()
	d.r.SetFillColor(drawing.ColorWhite)
	d.r.MoveTo(0, 0)
	d.r.LineTo(d.width, 0)
	d.r.LineTo(d.width, d.height)
	d.r.LineTo(0, d.height)
	d.r.Close()
	d.r.Fill()
}

func (d *drawer) line(col drawing.Color) {
	pts := d.c.Path()
	if len(pts) == 0 {
		return
	}
	d.r.ResetStyle()
	d.r.SetStrokeColor(col)
	d.r.SetStrokeWidth(d.opts.StrokeWidth)
	x, y := d.px(pts[0].X, pts[0].Y)
	d.r.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = d.px(p.X, p.Y)
		d.r.LineTo(x, y)
	}
	d.r.Stroke()
}

func (d *drawer) axisStroke() {
	d.r.ResetStyle()
	d.r.SetStrokeColor(drawing.ColorBlack)
	d.r.SetStrokeWidth(1)
}

func (d *drawer) xAxis() {
	bw, bh := d.c.Dimensions.BoundedWidth(), d.c.Dimensions.BoundedHeight()

	d.axisStroke()
	x0, y0 := d.px(0, bh)
	x1, _ := d.px(bw, bh)
	d.r.MoveTo(x0, y0)
	d.r.LineTo(x1, y0)
	d.r.Stroke()

	ticks := d.c.X.Ticks(d.opts.TickCount)
	for _, t := range ticks {
		x, y := d.px(d.c.X.MapTime(t.Time), bh)
		d.axisStroke()
		d.r.MoveTo(x, y)
		d.r.LineTo(x, y+tickLength)
		d.r.Stroke()

		d.resetText()
		box := d.r.MeasureText(t.Label)
		d.r.Text(t.Label, x-box.Width()/2, y+tickLength+box.Height()+2)
	}

	if d.opts.XLabel != "" {
		d.resetText()
		box := d.r.MeasureText(d.opts.XLabel)
		cx, _ := d.px(bw/2, 0)
		d.r.Text(d.opts.XLabel, cx-box.Width()/2, d.height-axisLabelGap/2)
	}
}

func (d *drawer) yAxis() {
	bh := d.c.Dimensions.BoundedHeight()

	d.axisStroke()
	x0, y0 := d.px(0, 0)
	_, y1 := d.px(0, bh)
	d.r.MoveTo(x0, y0)
	d.r.LineTo(x0, y1)
	d.r.Stroke()

	for _, v := range d.c.Y.Ticks(d.opts.TickCount) {
		x, y := d.px(0, d.c.Y.Map(v))
		d.axisStroke()
		d.r.MoveTo(x-tickLength, y)
		d.r.LineTo(x, y)
		d.r.Stroke()

		label := FormatTick(v)
		d.resetText()
		box := d.r.MeasureText(label)
		d.r.Text(label, x-tickLength-2-box.Width(), y+box.Height()/2)
	}

	if d.opts.YLabel != "" {
		d.resetText()
		box := d.r.MeasureText(d.opts.YLabel)
		_, cy := d.px(0, bh/2)
		d.r.SetTextRotation(gochart.DegreesToRadians(270))
		d.r.Text(d.opts.YLabel, axisLabelGap, cy+box.Width()/2)
		d.r.ClearTextRotation()
	}
}

func (d *drawer) dot(tip chart.Tooltip, col drawing.Color) {
	x, y := d.px(tip.Dot.X, tip.Dot.Y)
	d.r.ResetStyle()
	d.r.SetFillColor(col)
	d.r.SetStrokeColor(drawing.ColorBlack)
	d.r.SetStrokeWidth(dotStroke)
	d.r.Circle(d.opts.DotRadius, x, y)
	d.r.FillStroke()
}

func (d *drawer) tooltip(tip chart.Tooltip) {
	lines := tooltipLines(tip.Record.Close, tip.Record.Date)
	d.resetText()
	widths := make([]int, len(lines))
	lineH := 0
	for i, l := range lines {
		box := d.r.MeasureText(l)
		widths[i] = box.Width()
		if box.Height() > lineH {
			lineH = box.Height()
		}
	}
	lineH += 4
	rect := tooltipRect(d.c, tip, widths, lineH, d.width, d.height)

	d.r.ResetStyle()
	d.r.SetFillColor(drawing.ColorWhite)
	d.r.SetStrokeColor(drawing.ColorFromHex("999999"))
	d.r.SetStrokeWidth(1)
	d.r.MoveTo(rect.Min.X, rect.Min.Y)
	d.r.LineTo(rect.Max.X, rect.Min.Y)
	d.r.LineTo(rect.Max.X, rect.Max.Y)
	d.r.LineTo(rect.Min.X, rect.Max.Y)
	d.r.Close()
	d.r.FillStroke()

	d.resetText()
	for i, l := range lines {
		d.r.Text(l, rect.Min.X+tooltipPad, rect.Min.Y+tooltipPad+(i+1)*lineH-4)
	}
}

// tooltipRect centres the box on the tooltip's left coordinate with its bottom edge at
// the tooltip's top coordinate, then shifts it back inside the canvas.
func tooltipRect(c *chart.Context, tip chart.Tooltip, widths []int, lineH, canvasW, canvasH int) image.Rectangle {
	w := 0
	for _, lw := range widths {
		if lw > w {
			w = lw
		}
	}
	w += 2 * tooltipPad
	h := len(widths)*lineH + 2*tooltipPad

	m := c.Dimensions.Margin
	cx := int(math.Round(tip.Left + m))
	bottom := int(math.Round(tip.Top + m))
	rect := image.Rect(cx-w/2, bottom-h, cx-w/2+w, bottom)

	if rect.Min.X < 0 {
		rect = rect.Add(image.Pt(-rect.Min.X, 0))
	}
	if rect.Max.X > canvasW {
		rect = rect.Add(image.Pt(canvasW-rect.Max.X, 0))
	}
	if rect.Min.Y < 0 {
		rect = rect.Add(image.Pt(0, -rect.Min.Y))
	}
	if rect.Max.Y > canvasH {
		rect = rect.Add(image.Pt(0, canvasH-rect.Max.Y))
	}
	return rect
}
