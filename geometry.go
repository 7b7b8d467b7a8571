package main

import (
	"image"
	"strconv"
	"strings"
)

// stringToPoint parses a WxH size.
func stringToPoint(s string) (image.Point, bool) {
	fields := strings.Split(s, "x")
	if len(fields) != 2 {
		return image.Point{}, false
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return image.Point{}, false
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return image.Point{}, false
	}
	return image.Pt(x, y), true
}

// positive reports whether both dimensions of p are above zero, the
// precondition for fitting a viewport to p.
func positive(p image.Point) bool {
	return p.X > 0 && p.Y > 0
}
