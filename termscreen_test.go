package main

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestTerm(t *testing.T, cols, rows int) (*TermScreen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	ts, err := newTermScreen(sim)
	if err != nil {
		t.Fatal(err)
	}
	sim.SetSize(cols, rows)
	return ts, sim
}

func TestTermScreenSize(t *testing.T) {
	ts, _ := newTestTerm(t, 6, 3)
	defer ts.Close()

	if got := ts.Size(); got != image.Pt(6, 6) {
		t.Errorf("Size() = %v, want (6,6)", got)
	}
}

func TestTermScreenPresent(t *testing.T) {
	ts, sim := newTestTerm(t, 2, 1)
	defer ts.Close()

	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	frame := image.NewRGBA(image.Rect(0, 0, 2, 2))
	frame.SetRGBA(0, 0, red)
	frame.SetRGBA(1, 0, red)
	frame.SetRGBA(0, 1, blue)
	frame.SetRGBA(1, 1, blue)

	if err := ts.Present(frame, ""); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 2; x++ {
		r, _, style, _ := sim.GetContent(x, 0)
		if r != upperHalf {
			t.Errorf("cell %d rune = %q, want %q", x, r, upperHalf)
		}
		fg, bg, _ := style.Decompose()
		if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(0, 0, 255) {
			t.Errorf("cell %d colours = %v on %v, want red on blue", x, fg, bg)
		}
	}
}

func TestTermScreenInfo(t *testing.T) {
	ts, sim := newTestTerm(t, 4, 2)
	defer ts.Close()

	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := ts.Present(frame, "detail 64"); err != nil {
		t.Fatal(err)
	}
	var got []rune
	for x := 0; x < 4; x++ {
		r, _, _, _ := sim.GetContent(x, 0)
		got = append(got, r)
	}
	if string(got) != "deta" {
		t.Errorf("first row = %q, want %q", string(got), "deta")
	}
	if r, _, _, _ := sim.GetContent(0, 1); r != upperHalf {
		t.Errorf("second row rune = %q, want %q", r, upperHalf)
	}
}

func TestTermScreenPoll(t *testing.T) {
	ts, sim := newTestTerm(t, 10, 5)
	defer ts.Close()

	sim.InjectKey(tcell.KeyRune, '+', tcell.ModNone)
	sim.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)

	var cmds []Command
	for len(cmds) < 2 {
		for _, ev := range ts.Poll() {
			if ev.Kind == EventKeyPressed {
				cmds = append(cmds, ev.Cmd)
			}
		}
	}
	if !slices.Equal(cmds, []Command{CmdZoomIn, CmdPanLeft}) {
		t.Errorf("commands = %v, want [zoom-in pan-left]", cmds)
	}
}

func TestTermScreenClose(t *testing.T) {
	ts, _ := newTestTerm(t, 10, 5)
	ts.Close()

	for {
		events := ts.Poll()
		if slices.ContainsFunc(events, func(ev Event) bool { return ev.Kind == EventClosed }) {
			return
		}
	}
}
