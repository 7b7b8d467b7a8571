package main

import (
	"errors"
	"image"
	"os"
	"testing"
)

// fakeScreen replays batches of events and records what it shows.
type fakeScreen struct {
	sizes   []image.Point // size for each frame, the last one repeats
	batches [][]Event
	infos   []string
	frames  int
	err     error
	closed  bool
}

func (fs *fakeScreen) Size() image.Point {
	i := min(fs.frames, len(fs.sizes)-1)
	return fs.sizes[i]
}

func (fs *fakeScreen) Present(frame *image.RGBA, info string) error {
	if fs.err != nil {
		return fs.err
	}
	fs.frames++
	fs.infos = append(fs.infos, info)
	return nil
}

func (fs *fakeScreen) Poll() []Event {
	if len(fs.batches) == 0 {
		return []Event{{Kind: EventClosed}}
	}
	b := fs.batches[0]
	fs.batches = fs.batches[1:]
	return b
}

func (fs *fakeScreen) Close() error {
	fs.closed = true
	return nil
}

// recordingRenderer returns blank frames and remembers its arguments.
type recordingRenderer struct {
	calls     int
	view      Viewport
	pixelSize float64
	detail    int
	views     []Viewport
}

func (r *recordingRenderer) Render(v Viewport, pixelSize float64, detail int) *image.RGBA {
	r.calls++
	r.view, r.pixelSize, r.detail = v, pixelSize, detail
	r.views = append(r.views, v)
	w, h := v.Size()
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func press(cmds ...Command) []Event {
	var events []Event
	for _, c := range cmds {
		events = append(events, Event{Kind: EventKeyPressed, Cmd: c})
	}
	return events
}

func TestLoopStopsOnQuit(t *testing.T) {
	scr := &fakeScreen{
		sizes:   []image.Point{{100, 100}},
		batches: [][]Event{press(CmdQuit, CmdZoomIn)},
	}
	r := &recordingRenderer{}
	l := NewLoop(scr, r, DefaultTuning(), NavState{View: DefaultViewport(), Detail: 10})
	if err := l.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if r.calls != 1 {
		t.Errorf("rendered %d frames, want 1", r.calls)
	}
	if !sameBounds(l.State().View, DefaultViewport()) {
		t.Errorf("events after quit were applied: %v", l.State().View)
	}
}

func TestLoopStopsOnClose(t *testing.T) {
	scr := &fakeScreen{sizes: []image.Point{{10, 10}}}
	l := NewLoop(scr, &recordingRenderer{}, DefaultTuning(), NavState{View: DefaultViewport(), Detail: 10})
	if err := l.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if scr.frames != 1 {
		t.Errorf("presented %d frames, want 1", scr.frames)
	}
}

func TestLoopFoldsAllPendingEvents(t *testing.T) {
	scr := &fakeScreen{
		sizes: []image.Point{{200, 100}},
		batches: [][]Event{
			press(CmdZoomIn, CmdPanLeft, CmdMoreDetail),
			{{Kind: EventKeyReleased, Cmd: CmdZoomIn}, {Kind: EventResized}},
		},
	}
	r := &recordingRenderer{}
	l := NewLoop(scr, r, DefaultTuning(), NavState{View: DefaultViewport(), Detail: 10})
	if err := l.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	want := DefaultTuning().Dispatch(CmdZoomIn, NavState{View: DefaultViewport(), Detail: 10})
	want = DefaultTuning().Dispatch(CmdPanLeft, want)
	want = DefaultTuning().Dispatch(CmdMoreDetail, want)

	if r.calls != 3 {
		t.Errorf("rendered %d frames, want 3", r.calls)
	}
	if got := l.State(); !sameBounds(got.View, want.View) || got.Detail != want.Detail {
		t.Errorf("state %v detail %d, want %v detail %d", got.View, got.Detail, want.View, want.Detail)
	}
	fitted, _ := want.View.FitToScreen(200, 100)
	if !sameBounds(r.view, fitted) || r.detail != want.Detail {
		t.Errorf("last frame %v detail %d, want %v detail %d", r.view, r.detail, fitted, want.Detail)
	}
}

func TestLoopFitsEveryFrame(t *testing.T) {
	scr := &fakeScreen{
		sizes:   []image.Point{{100, 100}, {300, 100}},
		batches: [][]Event{{{Kind: EventResized}}},
	}
	r := &recordingRenderer{}
	l := NewLoop(scr, r, DefaultTuning(), NavState{View: DefaultViewport(), Detail: 10})
	if err := l.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	want, wantPixelSize := DefaultViewport().FitToScreen(300, 100)
	if !sameBounds(r.view, want) || !near(r.pixelSize, wantPixelSize) {
		t.Errorf("frame %v pixel %g, want %v pixel %g", r.view, r.pixelSize, want, wantPixelSize)
	}
	if !sameBounds(l.State().View, DefaultViewport()) {
		t.Errorf("state = %v, want %v", l.State().View, DefaultViewport())
	}
}

func TestLoopResizeRoundTrip(t *testing.T) {
	scr := &fakeScreen{
		sizes:   []image.Point{{1000, 1000}, {2000, 1000}, {1000, 1000}},
		batches: [][]Event{{{Kind: EventResized}}, {{Kind: EventResized}}},
	}
	r := &recordingRenderer{}
	l := NewLoop(scr, r, DefaultTuning(), NavState{View: DefaultViewport(), Detail: 10})
	if err := l.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if len(r.views) != 3 {
		t.Fatalf("rendered %d frames, want 3", len(r.views))
	}
	if !sameBounds(r.views[0], r.views[2]) {
		t.Errorf("frame after resizing back = %v, want %v", r.views[2], r.views[0])
	}
	if !near(r.views[2].PixelSize(), r.views[0].PixelSize()) {
		t.Errorf("pixel size after resizing back = %g, want %g", r.views[2].PixelSize(), r.views[0].PixelSize())
	}
	checkBounds(t, r.views[1], -3.0, -1.2, 1.8, 1.2)
}

func TestLoopResizeSequenceKeepsState(t *testing.T) {
	sizes := []image.Point{{1000, 1000}, {2000, 1000}, {500, 1500}, {1920, 1080}, {80, 48}, {1000, 1000}}
	var batches [][]Event
	for range sizes[1:] {
		batches = append(batches, []Event{{Kind: EventResized}})
	}
	scr := &fakeScreen{sizes: sizes, batches: batches}
	r := &recordingRenderer{}
	start := NewViewport(-0.7435, 0.1310, -0.7420, 0.1325, 1000, 1000)
	l := NewLoop(scr, r, DefaultTuning(), NavState{View: start, Detail: 10})
	if err := l.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if !sameBounds(l.State().View, start) {
		t.Errorf("state after resizes = %v, want %v", l.State().View, start)
	}
	if len(r.views) != len(sizes) {
		t.Fatalf("rendered %d frames, want %d", len(r.views), len(sizes))
	}
	for i, size := range sizes {
		want, _ := start.FitToScreen(size.X, size.Y)
		if !sameBounds(r.views[i], want) {
			t.Errorf("frame %d at %v = %v, want %v", i, size, r.views[i], want)
		}
	}
}

func TestLoopResizeThenNavigate(t *testing.T) {
	scr := &fakeScreen{
		sizes:   []image.Point{{1000, 1000}, {2000, 1000}},
		batches: [][]Event{{{Kind: EventResized}}, press(CmdZoomIn)},
	}
	r := &recordingRenderer{}
	l := NewLoop(scr, r, DefaultTuning(), NavState{View: DefaultViewport(), Detail: 10})
	if err := l.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	want := DefaultViewport().Zoom(0.8)
	if !sameBounds(l.State().View, want) {
		t.Errorf("state = %v, want %v", l.State().View, want)
	}
}

func TestLoopKeepsSizeWhenScreenIsEmpty(t *testing.T) {
	scr := &fakeScreen{sizes: []image.Point{{0, 0}}}
	r := &recordingRenderer{}
	l := NewLoop(scr, r, DefaultTuning(), NavState{View: DefaultViewport(), Detail: 10})
	if err := l.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if w, h := r.view.Size(); w != 1000 || h != 1000 {
		t.Errorf("rendered at %dx%d, want 1000x1000", w, h)
	}
}

func TestLoopClampsInitialDetail(t *testing.T) {
	scr := &fakeScreen{sizes: []image.Point{{10, 10}}}
	r := &recordingRenderer{}
	l := NewLoop(scr, r, DefaultTuning(), NavState{View: DefaultViewport(), Detail: 0})
	if err := l.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if r.detail != minDetail {
		t.Errorf("detail = %d, want %d", r.detail, minDetail)
	}
}

func TestLoopReset(t *testing.T) {
	scr := &fakeScreen{
		sizes:   []image.Point{{100, 100}},
		batches: [][]Event{press(CmdZoomIn, CmdPanDown, CmdLessDetail), press(CmdReset)},
	}
	r := &recordingRenderer{}
	l := NewLoop(scr, r, DefaultTuning(), NavState{View: DefaultViewport(), Detail: 30})
	if err := l.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	want, _ := DefaultViewport().FitToScreen(100, 100)
	if !sameBounds(r.view, want) {
		t.Errorf("view after reset = %v, want %v", r.view, want)
	}
	if r.detail != 20 {
		t.Errorf("reset changed detail to %d, want 20", r.detail)
	}
}

func TestLoopInfo(t *testing.T) {
	scr := &fakeScreen{
		sizes:   []image.Point{{10, 10}},
		batches: [][]Event{press(CmdToggleInfo), press(CmdToggleInfo)},
	}
	l := NewLoop(scr, &recordingRenderer{}, DefaultTuning(), NavState{View: DefaultViewport(), Detail: 10})
	if err := l.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if len(scr.infos) != 3 {
		t.Fatalf("presented %d frames, want 3", len(scr.infos))
	}
	if scr.infos[0] != "" || scr.infos[1] == "" || scr.infos[2] != "" {
		t.Errorf("infos = %q, want only the second set", scr.infos)
	}
}

func TestLoopSnapshot(t *testing.T) {
	dir := t.TempDir()
	scr := &fakeScreen{
		sizes:   []image.Point{{8, 6}},
		batches: [][]Event{press(CmdSnapshot, CmdSnapshot)},
	}
	l := NewLoop(scr, &recordingRenderer{}, DefaultTuning(), NavState{View: DefaultViewport(), Detail: 10})
	l.SetSnapshots(&SnapshotWriter{Dir: dir})
	if err := l.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("%d snapshots written, want 2", len(entries))
	}
}

func TestLoopPresentError(t *testing.T) {
	errGone := errors.New("gone")
	scr := &fakeScreen{sizes: []image.Point{{10, 10}}, err: errGone}
	l := NewLoop(scr, &recordingRenderer{}, DefaultTuning(), NavState{View: DefaultViewport(), Detail: 10})
	if err := l.Run(); !errors.Is(err, errGone) {
		t.Errorf("Run() = %v, want %v", err, errGone)
	}
}
