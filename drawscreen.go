package main

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"reflect"

	draw9 "9fans.net/go/draw"
)

const (
	darkgrey = draw9.Color(uint32(0x666666FF))
	yellow   = draw9.Color(uint32(0xFFFF00FF))
)

// menuCommands are the items of the button 2 menu.
var menuCommands = []struct {
	label string
	cmd   Command
}{
	{"zoom in", CmdZoomIn},
	{"zoom out", CmdZoomOut},
	{"", CmdNone},
	{"more detail", CmdMoreDetail},
	{"less detail", CmdLessDetail},
	{"", CmdNone},
	{"reset", CmdReset},
	{"info", CmdToggleInfo},
	{"snapshot", CmdSnapshot},
	{"", CmdNone},
	{"exit", CmdQuit},
}

// DrawScreen is a Screen on a plan9port devdraw window.
type DrawScreen struct {
	display   *draw9.Display
	errch     chan error
	mctl      *draw9.Mousectl
	kctl      *draw9.Keyboardctl
	bgColor   *draw9.Image
	fontColor *draw9.Image
	menu      *draw9.Menu
	frame     *draw9.Image // last uploaded frame

	inputs []reflect.SelectCase // indexed by the input constants
}

// Input channels of a DrawScreen, in the order of DrawScreen.inputs.
const (
	inputError = iota
	inputKey
	inputMouse
	inputResize
)

var _ Screen = (*DrawScreen)(nil)

func connectToDisplay(dims image.Point) (*DrawScreen, error) {
	errch := make(chan error)
	disp, err := draw9.Init(errch, "", progName, fmt.Sprintf("%dx%d", dims.X, dims.Y))
	if err != nil {
		return nil, fmt.Errorf("display: cannot connect: %w", err)
	}

	menu := &draw9.Menu{}
	for _, item := range menuCommands {
		menu.Item = append(menu.Item, item.label)
	}

	mctl := disp.InitMouse()
	kctl := disp.InitKeyboard()

	return &DrawScreen{
		display:   disp,
		errch:     errch,
		mctl:      mctl,
		kctl:      kctl,
		bgColor:   disp.AllocImageMix(darkgrey, darkgrey),
		fontColor: disp.AllocImageMix(darkgrey, yellow),
		menu:      menu,
		inputs:    drawInputs(errch, kctl, mctl),
	}, nil
}

func drawInputs(errch <-chan error, kctl *draw9.Keyboardctl, mctl *draw9.Mousectl) []reflect.SelectCase {
	recv := func(ch any) reflect.SelectCase {
		return reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ch)}
	}
	return []reflect.SelectCase{
		inputError:  recv(errch),
		inputKey:    recv(kctl.C),
		inputMouse:  recv(mctl.C),
		inputResize: recv(mctl.Resize),
	}
}

func (ds *DrawScreen) Size() image.Point {
	return ds.display.Image.Bounds().Size()
}

func (ds *DrawScreen) Present(frame *image.RGBA, info string) error {
	img, err := ds.display.ReadImage(toPlan9Bitmap(frame))
	if err != nil {
		return fmt.Errorf("display: upload frame: %w", err)
	}
	if ds.frame != nil {
		if err := ds.frame.Free(); err != nil {
			log.Printf("display: free frame: %v", err)
		}
	}
	ds.frame = img

	window := ds.display.Image
	window.Draw(window.Bounds(), ds.bgColor, nil, image.Point{})
	window.Draw(window.Bounds(), img, nil, image.Point{})
	if info != "" {
		font := ds.display.Font
		at := window.Bounds().Min
		r := image.Rect(0, 0, font.StringWidth(info), font.Height).Add(at)
		window.Draw(r, ds.bgColor, nil, image.Point{})
		window.String(at, ds.fontColor, image.Point{}, font, info)
	}

	if err := ds.display.Flush(); err != nil {
		return fmt.Errorf("display: flush: %w", err)
	}
	return nil
}

func (ds *DrawScreen) Poll() []Event {
	var events []Event
	for len(events) == 0 {
		events, _ = ds.receive(events, true)
	}
	for more := true; more; {
		events, more = ds.receive(events, false)
	}
	return events
}

// receive reads one message from the display channels and appends the
// resulting events. When block is false it returns at once if nothing
// is pending. The bool reports whether a message was read.
func (ds *DrawScreen) receive(events []Event, block bool) ([]Event, bool) {
	cases := ds.inputs
	if !block {
		cases = append(cases[:len(cases):len(cases)], reflect.SelectCase{Dir: reflect.SelectDefault})
	}
	chosen, v, _ := reflect.Select(cases)
	switch chosen {
	case inputError:
		err, _ := v.Interface().(error)
		return ds.displayError(events, err), true
	case inputKey:
		return appendKey(events, drawKeyCommand(v.Interface().(rune))), true
	case inputMouse:
		ds.mctl.Mouse = v.Interface().(draw9.Mouse)
		return ds.mouse(events), true
	case inputResize:
		return ds.resize(events), true
	}
	return events, false
}

// displayError ends the session. devdraw reports a closed window as a
// read error.
func (ds *DrawScreen) displayError(events []Event, err error) []Event {
	log.Printf("display: %v", err)
	return append(events, Event{Kind: EventClosed})
}

func (ds *DrawScreen) mouse(events []Event) []Event {
	if ds.mctl.Mouse.Buttons == 2 {
		i := draw9.MenuHit(2, ds.mctl, ds.menu, nil)
		if 0 <= i && i < len(menuCommands) {
			return appendKey(events, menuCommands[i].cmd)
		}
		return events
	}
	return appendKey(events, drawMouseCommand(ds.mctl.Mouse.Buttons))
}

func (ds *DrawScreen) resize(events []Event) []Event {
	if err := ds.display.Attach(draw9.RefNone); err != nil {
		log.Printf("display: failed to attach: %v", err)
		return append(events, Event{Kind: EventClosed})
	}
	return append(events, Event{Kind: EventResized})
}

func (ds *DrawScreen) Close() error {
	if ds.frame != nil {
		ds.frame.Free()
	}
	return ds.display.Close()
}

// appendKey appends a key press for cmd, skipping unbound input.
func appendKey(events []Event, cmd Command) []Event {
	if cmd == CmdNone {
		return events
	}
	return append(events, Event{Kind: EventKeyPressed, Cmd: cmd})
}

// toPlan9Bitmap converts an image to the plan9 format for display.
func toPlan9Bitmap(img *image.RGBA) *bytes.Buffer {
	n := 60 + img.Bounds().Dx()*img.Bounds().Dy()*4
	b := bytes.NewBuffer(make([]byte, 0, n))
	fmt.Fprintf(b, "%11s %11d %11d %11d %11d ",
		"r8g8b8a8", 0, 0, img.Bounds().Dx(), img.Bounds().Dy())
	for data := img.Pix; len(data) > 0; data = data[4:] {
		b.WriteByte(data[3])
		b.WriteByte(data[2])
		b.WriteByte(data[1])
		b.WriteByte(data[0])
	}
	return b
}
