package main

import (
	"fmt"
	"image"
	"log"
	"time"
)

// EventKind tells what a Screen reported.
type EventKind int

const (
	EventKeyPressed EventKind = iota
	EventKeyReleased
	EventResized
	EventClosed
)

// Event is one input from a Screen, already translated to a Command.
type Event struct {
	Kind EventKind
	Cmd  Command
}

// Screen is a surface that shows frames and reports input.
type Screen interface {
	// Size returns the current framebuffer size in pixels.
	Size() image.Point
	// Present shows the frame and returns after it is visible.
	// info is an optional line to display on top of it.
	Present(frame *image.RGBA, info string) error
	// Poll blocks until there is input and returns all pending events.
	Poll() []Event
	// Close releases the screen.
	Close() error
}

// Renderer computes the image of a fitted viewport.
type Renderer interface {
	Render(v Viewport, pixelSize float64, detail int) *image.RGBA
}

// Loop is the frame loop: fit, render, present, then fold input.
// It owns the navigation state and is not safe for concurrent use.
type Loop struct {
	screen   Screen
	renderer Renderer
	tuning   Tuning
	start    Viewport
	state    NavState
	showInfo bool
	snap     *SnapshotWriter

	frame *image.RGBA // last presented frame
}

// NewLoop returns a loop starting at st.
func NewLoop(scr Screen, r Renderer, t Tuning, st NavState) *Loop {
	st.Detail = ClampDetail(st.Detail)
	return &Loop{
		screen:   scr,
		renderer: r,
		tuning:   t,
		start:    st.View,
		state:    st,
	}
}

// SetSnapshots enables the snapshot command.
func (l *Loop) SetSnapshots(sw *SnapshotWriter) {
	l.snap = sw
}

// State returns the current navigation state.
func (l *Loop) State() NavState {
	return l.state
}

// Run iterates frames until quit or the screen closes.
func (l *Loop) Run() error {
	for {
		if err := l.paint(); err != nil {
			return err
		}
		for _, ev := range l.screen.Poll() {
			if !l.handle(ev) {
				return nil
			}
		}
	}
}

// paint fits the viewport to the screen and presents a frame.
// The fitted copy is drawn but never stored in the navigation state.
func (l *Loop) paint() error {
	size := l.screen.Size()
	if !positive(size) {
		w, h := l.state.View.Size()
		size = image.Pt(w, h)
	}
	fitted, pixelSize := l.state.View.FitToScreen(size.X, size.Y)

	start := time.Now()
	frame := l.renderer.Render(fitted, pixelSize, l.state.Detail)
	if *verbose {
		log.Printf("frame: %v detail %d in %v", fitted, l.state.Detail, time.Since(start))
	}

	var info string
	if l.showInfo {
		info = l.info(pixelSize)
	}
	if err := l.screen.Present(frame, info); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	l.frame = frame
	return nil
}

// handle folds one event into the state. It returns false when the
// loop must stop.
func (l *Loop) handle(ev Event) bool {
	switch ev.Kind {
	case EventClosed:
		return false
	case EventKeyPressed:
		// handled below
	default:
		return true
	}

	switch ev.Cmd {
	case CmdQuit:
		return false
	case CmdReset:
		l.state.View = l.start
	case CmdToggleInfo:
		l.showInfo = !l.showInfo
	case CmdSnapshot:
		l.snapshot()
	default:
		l.state = l.tuning.Dispatch(ev.Cmd, l.state)
	}
	return true
}

func (l *Loop) snapshot() {
	if l.snap == nil || l.frame == nil {
		return
	}
	if _, err := l.snap.Save(l.frame); err != nil {
		log.Printf("snapshot: %v", err)
	}
}

func (l *Loop) info(pixelSize float64) string {
	c := l.state.View.Center()
	return fmt.Sprintf("center %.10g%+.10gi  pixel %.4g  detail %d",
		real(c), imag(c), pixelSize, l.state.Detail)
}
