// Command mpdreplay is a non-WASM development harness for the mpd package:
// it feeds an MPD fixture to a Processor in deliberately small chunks,
// logging every reported tag/attribute/event, so resumability can be
// exercised and watched outside of a browser or WASM runtime. It plays the
// same role the teacher's main.go + server.go play for manifesto: a small
// flag-driven entry point wiring config to the actual work.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/dashstream/mpdwasm/mpd"
)

func main() {
	configPath := flag.String("config", "mpdreplay.json", "Path to the replay harness's configuration file")
	flag.Parse()

	if err := LoadConfig(*configPath); err != nil {
		log.Fatalf("mpdreplay: failed to load config: %v", err)
	}
	WatchConfig()

	if err := replay(Get()); err != nil {
		log.Fatalf("mpdreplay: %v", err)
	}
}

func replay(cfg Config) error {
	f, err := os.Open(cfg.FixturePath)
	if err != nil {
		return fmt.Errorf("opening fixture: %w", err)
	}
	defer f.Close()

	src := &chunkedReader{f: f, chunkSize: cfg.ChunkSize}
	proc := mpd.NewProcessor(src, newLoggingSink())

	if err := drain(proc, src); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}
	return followFixture(cfg.FixturePath, proc, src)
}

// drain keeps resuming the processor until the fixture has nothing more to
// offer right now.
func drain(proc *mpd.Processor, src *chunkedReader) error {
	src.atEOF = false
	for {
		if err := proc.Parse(); err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		if src.atEOF {
			return nil
		}
	}
}

// followFixture keeps the processor alive after the fixture's current end,
// resuming it whenever the file grows. A live MPD being appended to by an
// encoder is exactly the suspend/resume situation a WASM host puts the
// parser in, so this is the harness's end-to-end resumability exercise.
func followFixture(path string, proc *mpd.Processor, src *chunkedReader) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fixture watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watching fixture: %w", err)
	}

	// Catch up on anything appended between the initial drain and the
	// watch registration; those bytes would otherwise wait for the next
	// write event.
	if err := drain(proc, src); err != nil {
		return err
	}

	log.Printf("mpdreplay: following %s for appended data", path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				return fmt.Errorf("fixture %s was removed or renamed", path)
			}
			if event.Op&fsnotify.Write != 0 {
				// Only appends can be followed. A rewrite that shrinks the
				// file is caught here and fails loudly; a rewrite that has
				// already regrown past the current offset is
				// indistinguishable from an append by size and will be
				// misparsed -- use an append-only writer with this mode.
				pos, err := src.f.Seek(0, io.SeekCurrent)
				if err != nil {
					return fmt.Errorf("fixture position: %w", err)
				}
				fi, err := os.Stat(path)
				if err != nil {
					return fmt.Errorf("stat fixture: %w", err)
				}
				if fi.Size() < pos {
					return fmt.Errorf("fixture %s shrank from %d to %d bytes; it was rewritten, not appended to", path, pos, fi.Size())
				}
				if err := drain(proc, src); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("mpdreplay: fixture watcher error:", err)
		}
	}
}

// chunkedReader hands back at most one chunkSize-sized read per call,
// always reporting io.EOF afterward so the Processor it feeds suspends
// between chunks exactly as a WASM host would between parse calls. atEOF
// distinguishes that "pause for now" io.EOF from the file's genuine end.
type chunkedReader struct {
	f         *os.File
	chunkSize int
	atEOF     bool
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(p) > c.chunkSize {
		p = p[:c.chunkSize]
	}
	n, err := c.f.Read(p)
	if n == 0 {
		c.atEOF = true
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}
	// Always pause after one chunk, even if the file has more: this is
	// what forces the Processor to suspend and resume exactly like it
	// would across separate WASM parse calls.
	return n, io.EOF
}
