// Package datasource loads chart data from CSV and follows files as they
// grow.
//
// The expected format is a header row naming the columns, then one record
// per x value: the first column is x and every other column is the y value
// of the series named by its heading. Blank cells are skipped, so series
// may be sampled at different x values.
package datasource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"

	"gioui.org/f32"
	"gioui.org/x/explorer"
	"github.com/fsnotify/fsnotify"
)

// batchSize is the number of records read between snapshots while
// catching up with a large file.
const batchSize = 512

// Dataset is a snapshot of the data read so far.
type Dataset struct {
	Name     string
	Headings []string
	// Series holds the points of each heading, in file order.
	Series [][]f32.Point
	// Records counts the data records read, including any trimmed by
	// MaxPoints.
	Records int
	// Err is the error that stopped the source, if any.
	Err error
	// Done reports that no further snapshots will follow.
	Done bool
}

// Len returns the number of points across every series.
func (d Dataset) Len() int {
	n := 0
	for _, s := range d.Series {
		n += len(s)
	}
	return n
}

func (d Dataset) clone() Dataset {
	d.Headings = slices.Clone(d.Headings)
	series := make([][]f32.Point, len(d.Series))
	for i, s := range d.Series {
		series[i] = slices.Clone(s)
	}
	d.Series = series
	return d
}

// Source describes where CSV data comes from.
type Source struct {
	name   string
	open   func() (io.ReadCloser, error)
	follow bool
	// MaxPoints, if positive, keeps only the most recent points of each
	// series.
	MaxPoints int
}

// File returns a source that reads path and then waits for it to be
// written to, reading the new records as they are appended.
func File(path string) *Source {
	return &Source{
		name:   path,
		open:   func() (io.ReadCloser, error) { return os.Open(path) },
		follow: true,
	}
}

// Reader returns a source that reads r until EOF. Unlike a file, r can only
// be streamed once.
func Reader(name string, r io.Reader) *Source {
	var used atomic.Bool
	return &Source{
		name: name,
		open: func() (io.ReadCloser, error) {
			if used.Swap(true) {
				return nil, fmt.Errorf("%s has already been read", name)
			}
			if rc, ok := r.(io.ReadCloser); ok {
				return rc, nil
			}
			return io.NopCloser(r), nil
		},
	}
}

// Choose asks the user for a CSV file. Files with a name on disk are
// followed like File.
func Choose(expl *explorer.Explorer) (*Source, error) {
	file, err := expl.ChooseFile("csv")
	if err != nil {
		return nil, fmt.Errorf("failed choosing file: %w", err)
	}
	if f, ok := file.(interface{ Name() string }); ok {
		name := f.Name()
		if _, err := os.Stat(name); err == nil {
			file.Close()
			return File(name), nil
		}
	}
	return Reader("chosen file", file), nil
}

// Name returns the name the source reports in its datasets.
func (s *Source) Name() string {
	return s.name
}

// Stream reads the source in a new goroutine, sending a snapshot whenever it
// catches up with the available data. The channel is closed once the source
// is exhausted or ctx is cancelled. It is suitable as a skel stream
// provider.
func (s *Source) Stream(ctx context.Context) <-chan Dataset {
	out := make(chan Dataset, 1)
	go func() {
		defer close(out)
		s.run(ctx, out)
	}()
	return out
}

func (s *Source) run(ctx context.Context, out chan<- Dataset) {
	data := Dataset{Name: s.name}
	emit := func() bool {
		select {
		case out <- data.clone():
			return true
		case <-ctx.Done():
			return false
		}
	}
	finish := func(err error) {
		data.Err = err
		data.Done = true
		emit()
	}

	r, err := s.open()
	if err != nil {
		finish(fmt.Errorf("failed opening %s: %w", s.name, err))
		return
	}
	defer r.Close()
	// Unblock reads from pipes when the consumer goes away.
	stop := context.AfterFunc(ctx, func() { r.Close() })
	defer stop()

	var events <-chan fsnotify.Event
	var errs <-chan error
	if s.follow {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Printf("failed creating file watcher for %s: %v", s.name, err)
		} else {
			defer watcher.Close()
			if err := watcher.Add(s.name); err != nil {
				log.Printf("failed watching %s: %v", s.name, err)
			} else {
				events, errs = watcher.Events, watcher.Errors
			}
		}
	}

	csvReader := csv.NewReader(newLineReader(r))
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	p := parser{maxPoints: s.MaxPoints}
	unsent := 0
	for {
		rec, err := csvReader.Read()
		if err != nil {
			var perr *csv.ParseError
			switch {
			case ctx.Err() != nil:
				return
			case errors.As(err, &perr):
				log.Printf("skipping malformed record in %s: %v", s.name, err)
				continue
			case !errors.Is(err, io.EOF):
				finish(fmt.Errorf("failed reading %s: %w", s.name, err))
				return
			}
			if events == nil {
				finish(nil)
				return
			}
			if !emit() {
				return
			}
			unsent = 0
			if !waitForWrite(ctx, events, errs) {
				return
			}
			continue
		}
		p.parse(&data, rec)
		if unsent++; unsent >= batchSize {
			if !emit() {
				return
			}
			unsent = 0
		}
	}
}

// waitForWrite blocks until the watched file is written to. It returns
// false if ctx is cancelled or the watcher shuts down.
func waitForWrite(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			if ev.Has(fsnotify.Write) {
				return true
			}
		case err, ok := <-errs:
			if !ok {
				return false
			}
			log.Printf("file watcher: %v", err)
		}
	}
}

type parser struct {
	maxPoints int
	started   bool
}

// parse applies one CSV record to d. The first record is the header.
func (p *parser) parse(d *Dataset, rec []string) {
	if !p.started {
		p.started = true
		if len(rec) > 1 {
			d.Headings = make([]string, len(rec)-1)
			for i, h := range rec[1:] {
				d.Headings[i] = strings.TrimSpace(h)
			}
		}
		d.Series = make([][]f32.Point, len(d.Headings))
		return
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 32)
	if err != nil {
		log.Printf("failed parsing x value %q: %v", rec[0], err)
		return
	}
	d.Records++
	for i := 1; i < len(rec) && i <= len(d.Headings); i++ {
		cell := strings.TrimSpace(rec[i])
		if len(cell) < 1 {
			// Skip null cells.
			continue
		}
		y, err := strconv.ParseFloat(cell, 32)
		if err != nil {
			log.Printf("failed parsing %s[%d]=%q: %v", d.Headings[i-1], i, cell, err)
			continue
		}
		s := append(d.Series[i-1], f32.Pt(float32(x), float32(y)))
		if p.maxPoints > 0 && len(s) > p.maxPoints {
			s = s[len(s)-p.maxPoints:]
		}
		d.Series[i-1] = s
	}
}
