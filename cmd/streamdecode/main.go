// Command streamdecode decodes a grounded OCR token stream dump and emits
// the annotation sequence plus optional render artifacts. It is mainly a
// debugging aid: point it at a captured stream and inspect what the client
// would have painted.
//
// Usage:
//
//	streamdecode [flags] <stream-file>
//
// Pass "-" to read the stream from stdin.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wudi/ocrkit/export"
	"github.com/wudi/ocrkit/grounding"
	"github.com/wudi/ocrkit/overlay"
	"github.com/wudi/ocrkit/raster"
	"github.com/wudi/ocrkit/render"
)

type options struct {
	streamPath string
	mode       string
	width      float64
	height     float64
	incomplete bool
	pngPath    string
	svgPath    string
	htmlPath   string
	text       bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "streamdecode: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "streamdecode: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: streamdecode [flags] <stream-file>\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.mode, "mode", "structured", "content mode: plain-text, structured, or free-form")
	flag.Float64Var(&opts.width, "width", 1000, "target surface width in pixels")
	flag.Float64Var(&opts.height, "height", 1000, "target surface height in pixels")
	flag.BoolVar(&opts.incomplete, "incomplete", false, "treat the stream as still growing")
	flag.StringVar(&opts.pngPath, "png", "", "write a raster snapshot to this file")
	flag.StringVar(&opts.svgPath, "svg", "", "write the vector overlay to this file")
	flag.StringVar(&opts.htmlPath, "html", "", "write the structured document as HTML to this file")
	flag.BoolVar(&opts.text, "text", false, "print the flattened plain-text view instead of JSON")
	flag.Parse()

	if flag.NArg() != 1 {
		return options{}, fmt.Errorf("expected exactly one stream file argument")
	}
	opts.streamPath = flag.Arg(0)
	switch render.Mode(opts.mode) {
	case render.ModePlainText, render.ModeStructured, render.ModeFreeForm:
	default:
		return options{}, fmt.Errorf("unknown mode %q", opts.mode)
	}
	return opts, nil
}

func run(opts options) error {
	stream, err := readStream(opts.streamPath)
	if err != nil {
		return err
	}

	anns := grounding.Decode(stream, !opts.incomplete)

	if opts.svgPath != "" {
		if err := writeOverlay(opts, anns); err != nil {
			return err
		}
	}
	if opts.pngPath != "" {
		if err := writeSnapshot(opts, anns); err != nil {
			return err
		}
	}
	if opts.htmlPath != "" {
		html, err := export.HTML(export.Markdown(anns))
		if err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		if err := os.WriteFile(opts.htmlPath, []byte(html), 0o644); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
	}

	if opts.text {
		fmt.Println(grounding.PlainText(anns))
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(anns)
}

func readStream(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read stream: %w", err)
	}
	return string(data), nil
}

func writeOverlay(opts options, anns []grounding.Annotation) error {
	p := overlay.NewPainter()
	ctrl := render.NewController(p, render.Mode(opts.mode))
	ctrl.RepaintAll(anns, opts.width, opts.height)

	f, err := os.Create(opts.svgPath)
	if err != nil {
		return fmt.Errorf("create overlay file: %w", err)
	}
	defer f.Close()
	if err := p.Render(f); err != nil {
		return fmt.Errorf("write overlay: %w", err)
	}
	return nil
}

func writeSnapshot(opts options, anns []grounding.Annotation) error {
	p := raster.NewPainter()
	ctrl := render.NewController(p, render.Mode(opts.mode))
	ctrl.RepaintAll(anns, opts.width, opts.height)

	f, err := os.Create(opts.pngPath)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := p.EncodePNG(f); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
