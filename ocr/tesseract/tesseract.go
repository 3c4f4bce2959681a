// Package tesseract provides a local, offline engine backed by the gosseract
// client. It lets the desktop client produce grounded streams without the
// remote backend: recognized paragraphs become tagged regions with their
// pixel bounds normalized into model space.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/wudi/ocrkit/ocr"
)

// Engine implements ocr.Engine using the gosseract client.
type Engine struct {
	clientFactory func() *gosseract.Client
}

// NewEngine constructs a Tesseract-backed engine.
func NewEngine() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize performs OCR on a single image and synthesizes the grounded
// stream from the recognized paragraph blocks.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	select {
	case <-ctx.Done():
		return ocr.Result{}, ctx.Err()
	default:
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(in.Image))
	if err != nil {
		return ocr.Result{}, fmt.Errorf("decode image dimensions: %w", err)
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(in.Image); err != nil {
		return ocr.Result{}, fmt.Errorf("set image: %w", err)
	}
	if len(in.Languages) > 0 {
		if err := c.SetLanguage(in.Languages...); err != nil {
			return ocr.Result{}, fmt.Errorf("set languages: %w", err)
		}
	}
	for k, v := range in.Metadata {
		if err := c.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return ocr.Result{}, fmt.Errorf("set variable %s: %w", k, err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return ocr.Result{}, fmt.Errorf("recognize text: %w", err)
	}

	blocks := extractBlocks(c)
	return ocr.Result{
		InputID:   in.ID,
		Stream:    ocr.GroundedStream(blocks, float64(cfg.Width), float64(cfg.Height)),
		PlainText: strings.TrimSpace(text),
		Blocks:    blocks,
	}, nil
}

func extractBlocks(c *gosseract.Client) []ocr.Block {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_PARA)
	if err != nil || len(boxes) == 0 {
		return nil
	}
	blocks := make([]ocr.Block, 0, len(boxes))
	for _, b := range boxes {
		blocks = append(blocks, ocr.Block{
			Text: b.Word,
			Bounds: ocr.Region{
				X:      float64(b.Box.Min.X),
				Y:      float64(b.Box.Min.Y),
				Width:  float64(b.Box.Dx()),
				Height: float64(b.Box.Dy()),
			},
			Confidence: b.Confidence / 100.0,
		})
	}
	return blocks
}
