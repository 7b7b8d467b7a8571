package main

// Command is a discrete user action, independent of the frontend
// that produced it.
type Command int

const (
	CmdNone Command = iota
	CmdZoomIn
	CmdZoomInSlow
	CmdZoomOut
	CmdPanLeft
	CmdPanRight
	CmdPanUp
	CmdPanDown
	CmdMoreDetail
	CmdLessDetail
	CmdQuit

	// handled by the loop, identity for Dispatch
	CmdReset
	CmdToggleInfo
	CmdSnapshot
)

var commandNames = [...]string{
	CmdNone:       "none",
	CmdZoomIn:     "zoom-in",
	CmdZoomInSlow: "zoom-in-slow",
	CmdZoomOut:    "zoom-out",
	CmdPanLeft:    "pan-left",
	CmdPanRight:   "pan-right",
	CmdPanUp:      "pan-up",
	CmdPanDown:    "pan-down",
	CmdMoreDetail: "more-detail",
	CmdLessDetail: "less-detail",
	CmdQuit:       "quit",
	CmdReset:      "reset",
	CmdToggleInfo: "info",
	CmdSnapshot:   "snapshot",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// Bounds of the iteration budget the dispatcher hands out.
const (
	minDetail = 2
	maxDetail = 1 << 20
)

// NavState is the state threaded from frame to frame.
type NavState struct {
	View   Viewport
	Detail int // iteration budget for the renderer
}

// ClampDetail brings n within [minDetail, maxDetail].
func ClampDetail(n int) int {
	return min(max(n, minDetail), maxDetail)
}

// Tuning holds the zoom factors and pan distance used by Dispatch.
type Tuning struct {
	ZoomIn     float64
	ZoomInSlow float64
	ZoomOut    float64
	PanPixels  float64
}

// DefaultTuning returns the stock navigation constants.
func DefaultTuning() Tuning {
	return Tuning{
		ZoomIn:     0.8,
		ZoomInSlow: 0.98,
		ZoomOut:    1.25,
		PanPixels:  100.0,
	}
}

// Dispatch applies one command to st and returns the next state.
// A command changes either the viewport or the detail level, never
// both. Unknown commands leave the state as it is.
func (t Tuning) Dispatch(cmd Command, st NavState) NavState {
	switch cmd {
	case CmdZoomIn:
		st.View = st.View.Zoom(t.ZoomIn)
	case CmdZoomInSlow:
		st.View = st.View.Zoom(t.ZoomInSlow)
	case CmdZoomOut:
		st.View = st.View.Zoom(t.ZoomOut)
	case CmdPanLeft:
		st.View = st.View.MoveLeft(t.PanPixels)
	case CmdPanRight:
		st.View = st.View.MoveLeft(-t.PanPixels)
	case CmdPanUp:
		st.View = st.View.MoveDown(-t.PanPixels)
	case CmdPanDown:
		st.View = st.View.MoveDown(t.PanPixels)
	case CmdMoreDetail:
		st.Detail = min(st.Detail*3/2, maxDetail)
	case CmdLessDetail:
		st.Detail = max(st.Detail*2/3, minDetail)
	}
	return st
}
