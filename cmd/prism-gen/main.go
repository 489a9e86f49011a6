// Command prism-gen writes synthetic CSV data for prism to chart.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: generate a csv trace of synthetic signals
Usage:

 %[1]s -output trace.csv & prism -data trace.csv

OR

 %[1]s | prism -data -

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	dur := flag.Duration("sample-interval", 100*time.Millisecond, "Interval between samples")
	outputName := flag.String("output", "-", "Output file for CSV data")
	signalList := flag.String("signals", "sine,cosine,walk", "Comma-separated signals: sine, cosine, square, walk")
	period := flag.Duration("period", 5*time.Second, "Period of the periodic signals")
	count := flag.Int("count", 0, "Number of samples to write before exiting, or 0 to run until interrupted")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Seed for the random walk")
	flag.Parse()

	signals, err := parseSignals(*signalList, period.Seconds(), *seed)
	if err != nil {
		log.Fatal(err)
	}

	var output io.WriteCloser
	if *outputName == "-" {
		output = os.Stdout
	} else {
		f, err := os.Create(*outputName)
		if err != nil {
			log.Fatalf("failed opening output file %q: %v", *outputName, err)
		}
		output = f
	}

	ticker := time.NewTicker(*dur)
	defer ticker.Stop()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	start := time.Now()
	w := newWriter(output, signals)
	if err := w.header(); err != nil {
		log.Fatalf("failed writing header: %v", err)
	}
	for n := 0; *count == 0 || n < *count; n++ {
		select {
		case <-sigChan:
			// We've gotten an interrupt; shut down.
			if err := output.Close(); err != nil {
				log.Printf("failed closing output: %v", err)
			}
			return
		case now := <-ticker.C:
			if err := w.sample(now.Sub(start).Seconds()); err != nil {
				log.Fatalf("failed writing sample: %v", err)
			}
		}
	}
	if err := output.Close(); err != nil {
		log.Printf("failed closing output: %v", err)
	}
}

// writer emits one CSV line per sample, flushed immediately.
type writer struct {
	out     *bufio.Writer
	signals []Signal
	line    []byte
}

func newWriter(w io.Writer, signals []Signal) *writer {
	return &writer{out: bufio.NewWriter(w), signals: signals}
}

func (w *writer) header() error {
	w.line = append(w.line[:0], "time (s)"...)
	for _, s := range w.signals {
		w.line = append(w.line, ", "...)
		w.line = append(w.line, s.Name()...)
	}
	return w.flush()
}

func (w *writer) sample(t float64) error {
	w.line = strconv.AppendFloat(w.line[:0], t, 'f', 3, 64)
	for _, s := range w.signals {
		w.line = append(w.line, ", "...)
		w.line = strconv.AppendFloat(w.line, s.Read(t), 'f', -1, 64)
	}
	return w.flush()
}

func (w *writer) flush() error {
	w.line = append(w.line, '\n')
	if _, err := w.out.Write(w.line); err != nil {
		return err
	}
	return w.out.Flush()
}
