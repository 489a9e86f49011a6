// Command prism demonstrates the chart widget: a set of draggable handles
// joined by a line, and a live view of CSV data that can be panned by
// dragging and zoomed by scrolling.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/prism/datasource"
)

func main() {
	dataPath := flag.String("data", "", "CSV file to chart live, or - to read standard input")
	configPath := flag.String("config", "", "TOML file with chart styling")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	style, err := cfg.Resolve()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	var src *datasource.Source
	switch *dataPath {
	case "":
	case "-":
		src = datasource.Reader("stdin", os.Stdin)
	default:
		src = datasource.File(*dataPath)
	}

	go func() {
		w := app.NewWindow(app.Title(style.Title))
		if err := loop(w, style, src); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, style Style, src *datasource.Source) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	expl := explorer.NewExplorer(w)
	win := Window{
		Controller: stream.NewController(ctx, w.Invalidate),
		Invalidate: w.Invalidate,
	}
	ui := NewUI(style, win, expl, src)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
