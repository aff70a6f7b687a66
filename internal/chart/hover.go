package chart

import "PriceChart/internal/model"

// HoverState is the interaction state of the tooltip.
type HoverState int

const (
	Idle HoverState = iota
	Hovering
)

func (s HoverState) String() string {
	if s == Hovering {
		return "hovering"
	}
	return "idle"
}

// tooltipOffset lifts the tooltip box above the dot.
const tooltipOffset = 20

// PointerEvent is a pointer position relative to the drawable area's origin.
type PointerEvent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tooltip is what the presentation layer needs to show or hide the hover marker.
type Tooltip struct {
	Visible bool         `json:"visible"`
	Record  model.Record `json:"record"`
	Index   int          `json:"index"`
	Clamped bool         `json:"clamped"`
	Dot     model.Point  `json:"dot"`
	Left    float64      `json:"left"`
	Top     float64      `json:"top"`
}

// Hover is the two-state tooltip machine. The zero value is Idle.
type Hover struct {
	State HoverState
	Last  Location
}

// Move handles a pointer move. Positions outside the drawable area behave like Leave.
func (h Hover) Move(c *Context, ev PointerEvent) (Hover, Tooltip) {
	if !c.Dimensions.Contains(ev.X, ev.Y) {
		return h.Leave()
	}
	loc, err := LocateMode(c.Dataset, c.X.InvertTime(ev.X), c.Snap)
	if err != nil {
		return h.Leave()
	}
	dot := c.Project(loc.Record)
	return Hover{State: Hovering, Last: loc}, Tooltip{
		Visible: true,
		Record:  loc.Record,
		Index:   loc.Index,
		Clamped: loc.Clamped,
		Dot:     dot,
		Left:    dot.X,
		Top:     dot.Y - tooltipOffset,
	}
}

// Leave hides the tooltip.
func (h Hover) Leave() (Hover, Tooltip) {
	return Hover{State: Idle}, Tooltip{}
}

// HandleMoves replays pointer moves in order and returns the final state and every tooltip produced.
func (c *Context) HandleMoves(h Hover, events []PointerEvent) (Hover, []Tooltip) {
	tips := make([]Tooltip, 0, len(events))
	for _, ev := range events {
		var tip Tooltip
		h, tip = h.Move(c, ev)
		tips = append(tips, tip)
	}
	return h, tips
}
