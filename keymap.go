package main

import "github.com/gdamore/tcell/v2"

// devdraw keyboard runes for the keys without a printable form.
const (
	homeKey       = 61453
	upArrowKey    = 61454
	downArrowKey  = 128
	leftArrowKey  = 61457
	rightArrowKey = 61458
	escKey        = 27

	scrollWheelUp   = 8
	scrollWheelDown = 16
)

// runeCommands is shared by both frontends.
var runeCommands = map[rune]Command{
	'+': CmdZoomIn,
	'=': CmdZoomIn,
	'.': CmdZoomInSlow,
	'>': CmdZoomInSlow,
	'-': CmdZoomOut,
	'_': CmdZoomOut,
	'h': CmdPanLeft,
	'l': CmdPanRight,
	'k': CmdPanUp,
	'j': CmdPanDown,
	']': CmdMoreDetail,
	'*': CmdMoreDetail,
	'[': CmdLessDetail,
	'/': CmdLessDetail,
	'r': CmdReset,
	'i': CmdToggleInfo,
	's': CmdSnapshot,
	'q': CmdQuit,
}

// drawKeyCommand maps a rune read from the devdraw keyboard.
func drawKeyCommand(k rune) Command {
	switch k {
	case leftArrowKey:
		return CmdPanLeft
	case rightArrowKey:
		return CmdPanRight
	case upArrowKey:
		return CmdPanUp
	case downArrowKey:
		return CmdPanDown
	case homeKey:
		return CmdReset
	case escKey:
		return CmdQuit
	}
	return runeCommands[k]
}

// drawMouseCommand maps devdraw mouse buttons. Only the wheel is bound.
func drawMouseCommand(buttons int) Command {
	switch buttons {
	case scrollWheelUp:
		return CmdZoomIn
	case scrollWheelDown:
		return CmdZoomOut
	}
	return CmdNone
}

// termKeyCommand maps a tcell key event.
func termKeyCommand(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyLeft:
		return CmdPanLeft
	case tcell.KeyRight:
		return CmdPanRight
	case tcell.KeyUp:
		return CmdPanUp
	case tcell.KeyDown:
		return CmdPanDown
	case tcell.KeyHome:
		return CmdReset
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CmdQuit
	case tcell.KeyRune:
		return runeCommands[ev.Rune()]
	}
	return CmdNone
}
