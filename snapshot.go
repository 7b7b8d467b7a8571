package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"9fans.net/go/plan9"
	"9fans.net/go/plan9/client"
	"9fans.net/go/plumb"
)

var plumber *client.Fid

// SnapshotWriter saves frames as numbered PNG files in Dir.
type SnapshotWriter struct {
	Dir   string
	Plumb bool // send the saved path to the plumber
	next  int
}

// Save writes img to the first free fview-N.png and returns its path.
func (sw *SnapshotWriter) Save(img image.Image) (string, error) {
	for {
		sw.next++
		path := filepath.Join(sw.Dir, fmt.Sprintf("%s-%d.png", progName, sw.next))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("save: %w", err)
		}
		if err := encodePNG(f, img); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("save %s: %w", path, err)
		}
		log.Printf("snapshot: saved %s", path)
		if sw.Plumb {
			plumbFile(path)
		}
		return path, nil
	}
}

// writePNG writes img to path, replacing an existing file.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return encodePNG(f, img)
}

// encodePNG encodes img into f and closes it.
func encodePNG(f *os.File, img image.Image) error {
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func connectToPlumber() {
	var err error
	plumber, err = plumb.Open("send", plan9.OWRITE|plan9.OCEXEC)
	if err != nil {
		log.Printf("plumber not available: %v", err)
	}
}

func plumbFile(s string) {
	if plumber == nil {
		log.Printf("plumber not available")
		return
	}

	if abs, err := filepath.Abs(s); err == nil {
		s = abs
	}
	m := plumb.Message{
		Src:  progName,
		Dir:  filepath.Dir(s),
		Type: "text",
		Data: []byte(s),
	}
	if err := m.Send(plumber); err != nil {
		log.Printf("plumber: %v", err)
	}
}
