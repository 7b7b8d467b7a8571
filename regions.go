package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var errUnknownRegion = errors.New("unknown region")

// region is a named starting view.
type region struct {
	minRe, maxRe float64
	minIm, maxIm float64
}

// Classic landmarks of the Mandelbrot set.
var regions = map[string]region{
	"full": {-2.0, 0.8, -1.2, 1.2},

	// dense filaments and repeating curls
	"seahorse": {-0.8, -0.7, 0.05, 0.15},
	// large bulb with trunk-like tendrils
	"elephant": {-1.85, -1.75, -0.10, -0.02},
	// small copy with tight spiral arms
	"spiral": {-0.7435, -0.7420, 0.1310, 0.1325},
	// threefold symmetric spiral structure
	"triple": {-0.7480, -0.7450, 0.0950, 0.0980},
	// deep, highly detailed spiral filaments
	"dragon": {-0.7400, -0.7350, 0.1800, 0.1850},
	// self-similar copy inside a spiral arm
	"minibrot": {-1.7390, -1.7375, -0.0235, -0.0220},
}

// regionNames returns the known region names, sorted.
func regionNames() []string {
	return slices.Sorted(maps.Keys(regions))
}

// lookupRegion returns the viewport of a named region at w x h pixels.
// The empty name is the default framing.
func lookupRegion(name string, w, h int) (Viewport, error) {
	if name == "" {
		name = "full"
	}
	r, ok := regions[name]
	if !ok {
		return Viewport{}, fmt.Errorf("region %q: %w", name, errUnknownRegion)
	}
	return NewViewport(r.minRe, r.minIm, r.maxRe, r.maxIm, w, h), nil
}
