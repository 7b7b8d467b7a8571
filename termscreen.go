package main

import (
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"
)

// upperHalf shows the upper pixel of a cell in the foreground colour
// and the lower one in the background colour.
const upperHalf = '▀'

// TermScreen is a Screen on a terminal. Every cell holds two pixels
// stacked vertically, which keeps pixels roughly square.
type TermScreen struct {
	screen tcell.Screen
	events chan tcell.Event
}

var _ Screen = (*TermScreen)(nil)

func connectToTerminal() (*TermScreen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return newTermScreen(s)
}

// newTermScreen initialises s and starts reading its events.
func newTermScreen(s tcell.Screen) (*TermScreen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("terminal: init: %w", err)
	}
	s.HideCursor()
	ts := &TermScreen{
		screen: s,
		events: make(chan tcell.Event, 100),
	}
	go ts.pump()
	return ts, nil
}

// pump forwards terminal events until the screen is finalised.
func (ts *TermScreen) pump() {
	defer close(ts.events)
	for {
		ev := ts.screen.PollEvent()
		if ev == nil {
			return
		}
		ts.events <- ev
	}
}

func (ts *TermScreen) Size() image.Point {
	w, h := ts.screen.Size()
	return image.Pt(max(w, 1), max(2*h, 2))
}

func (ts *TermScreen) Present(frame *image.RGBA, info string) error {
	cols, rows := ts.screen.Size()
	b := frame.Bounds()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x, y := b.Min.X+col, b.Min.Y+2*row
			if x >= b.Max.X || y+1 >= b.Max.Y {
				continue
			}
			style := tcell.StyleDefault.
				Foreground(tcellColor(frame, x, y)).
				Background(tcellColor(frame, x, y+1))
			ts.screen.SetContent(col, row, upperHalf, nil, style)
		}
	}

	if info != "" {
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
		col := 0
		for _, r := range info {
			if col >= cols {
				break
			}
			ts.screen.SetContent(col, 0, r, nil, style)
			col++
		}
	}

	ts.screen.Show()
	return nil
}

func (ts *TermScreen) Poll() []Event {
	var events []Event
	for len(events) == 0 {
		ev, ok := <-ts.events
		if !ok {
			return append(events, Event{Kind: EventClosed})
		}
		events = ts.translate(events, ev)
	}
	for {
		select {
		case ev, ok := <-ts.events:
			if !ok {
				return append(events, Event{Kind: EventClosed})
			}
			events = ts.translate(events, ev)
		default:
			return events
		}
	}
}

func (ts *TermScreen) translate(events []Event, ev tcell.Event) []Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return appendKey(events, termKeyCommand(ev))
	case *tcell.EventResize:
		ts.screen.Sync()
		return append(events, Event{Kind: EventResized})
	}
	return events
}

func (ts *TermScreen) Close() error {
	ts.screen.Fini()
	return nil
}

func tcellColor(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
