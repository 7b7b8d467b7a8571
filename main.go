package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	xdraw "golang.org/x/image/draw"
)

const (
	progName = "fview"

	frameCacheSize = 5
)

var (
	windowSizeFlag = flag.String("w", "1000x1000", "set window size")
	terminal       = flag.Bool("t", false, "draw in the terminal instead of a devdraw window")
	detailFlag     = flag.Int("n", 64, "initial detail level, the iteration budget")
	regionFlag     = flag.String("r", "", "start at a named region: "+strings.Join(regionNames(), ", "))
	paletteFlag    = flag.String("c", "hue", "colour palette: hue, gray")
	scaleFlag      = flag.Int("s", 1, "render at 1/`n` resolution and scale up")
	fast           = flag.Bool("f", false, "choose fast over best algorithms for scaling")
	snapshotDir    = flag.String("d", ".", "write snapshots to `dir`")
	plumbSnapshots = flag.Bool("p", false, "plumb the paths of snapshots")
	outputFile     = flag.String("o", "", "render one frame to `file` as PNG and exit")
	silent         = flag.Bool("q", false, "silent mode, do not log anything")
	verbose        = flag.Bool("v", false, "verbose mode, log timing of every frame")
	logFile        = flag.String("l", "", "append log output to `file`, the only log output with -t")
)

var (
	zoomInFlag     = flag.Float64("zoom", 0.8, "zoom in factor")
	zoomInSlowFlag = flag.Float64("slowzoom", 0.98, "slow zoom in factor")
	zoomOutFlag    = flag.Float64("unzoom", 1.25, "zoom out factor")
	panFlag        = flag.Float64("pan", 100, "pan distance in pixels")
)

var (
	enableProfiler = flag.Bool("profile", false, "run with the profiler enabled")
	cpuprofile     = flag.String("cpuprofile", "cpu.prof", "write cpu profile to `file`")
	memprofile     = flag.String("memprofile", "mem.prof", "write memory profile to `file`")
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s [-t|-f|-p|-q|-v] [-w WxH] [-r region] [-l logfile] [-o file]

%s is a Mandelbrot set viewer.

Keys:
  + =     zoom in          . >     zoom in slowly     - _   zoom out
  arrows  pan (also h j k l)
  ] *     more detail      [ /     less detail
  r Home  reset view       i       info               s     snapshot
  q Esc   quit

Flags:
`, progName, progName)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if *enableProfiler {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	windowSize, ok := stringToPoint(*windowSizeFlag)
	if !ok || !positive(windowSize) {
		log.Fatalf("cannot compute window size from %s", *windowSizeFlag)
	}

	logOutput, err := logWriter(*terminal, *silent, *logFile)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	log.SetOutput(logOutput)

	if *fast {
		previewScaler = xdraw.NearestNeighbor
	}

	renderer, err := newRenderer(*paletteFlag, *scaleFlag)
	if err != nil {
		log.Fatal(err)
	}

	start, err := lookupRegion(*regionFlag, windowSize.X, windowSize.Y)
	if err != nil {
		log.Fatalf("%v; known regions: %s", err, strings.Join(regionNames(), ", "))
	}
	state := NavState{View: start, Detail: ClampDetail(*detailFlag)}

	if *outputFile != "" {
		fitted, pixelSize := state.View.FitToScreen(windowSize.X, windowSize.Y)
		if err := writePNG(*outputFile, renderer.Render(fitted, pixelSize, state.Detail)); err != nil {
			log.Fatalf("output: %v", err)
		}
		return
	}

	if *plumbSnapshots {
		connectToPlumber()
	}

	var scr Screen
	if *terminal {
		scr, err = connectToTerminal()
	} else {
		scr, err = connectToDisplay(windowSize)
	}
	if err != nil {
		log.Fatal(err)
	}

	tuning := Tuning{
		ZoomIn:     *zoomInFlag,
		ZoomInSlow: *zoomInSlowFlag,
		ZoomOut:    *zoomOutFlag,
		PanPixels:  *panFlag,
	}
	loop := NewLoop(scr, NewCachedRenderer(renderer, frameCacheSize), tuning, state)
	loop.SetSnapshots(&SnapshotWriter{Dir: *snapshotDir, Plumb: *plumbSnapshots})
	runErr := loop.Run()
	if err := scr.Close(); err != nil {
		log.Printf("close: %v", err)
	}
	if runErr != nil {
		log.Fatalf("run: %v", runErr)
	}

	if *enableProfiler {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}

// logWriter returns where log output goes. tcell owns the terminal
// while -t is in effect, so terminal sessions log only to a file.
func logWriter(terminal, silent bool, path string) (io.Writer, error) {
	switch {
	case silent:
		return io.Discard, nil
	case path != "":
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		return f, nil
	case terminal:
		return io.Discard, nil
	}
	return os.Stderr, nil
}

// newRenderer returns the renderer for the palette name and scale.
func newRenderer(paletteName string, scale int) (*EscapeRenderer, error) {
	p, ok := palettes[paletteName]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q", paletteName)
	}
	if scale < 1 {
		return nil, fmt.Errorf("scale must be at least 1, got %d", scale)
	}
	r := NewEscapeRenderer()
	r.Palette = p
	r.Scale = scale
	return r, nil
}
