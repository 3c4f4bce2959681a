package ocr

import "context"

// ImageFormat identifies the content type of an OCR input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
)

// Region describes a rectangular area in pixel coordinates with the origin
// in the upper-left corner of the image.
type Region struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IsEmpty reports whether the region has non-positive dimensions.
func (r Region) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Input encapsulates a single image submitted for recognition.
type Input struct {
	// ID is an optional caller-provided identifier echoed back in the Result.
	ID string
	// Image is the encoded image payload in the format declared by Format.
	Image []byte
	// Format declares the image content type.
	Format ImageFormat
	// Languages is a list of language hints (e.g., "eng") that engines can
	// use to select trained data.
	Languages []string
	// Metadata passes engine-specific knobs through without hard-coding
	// them into the API surface.
	Metadata map[string]string
}

// Block is one recognized region with pixel bounds.
type Block struct {
	Text       string
	Bounds     Region
	Confidence float64
}

// Result captures recognition output for a single input image.
type Result struct {
	// InputID mirrors the Input.ID that produced this result.
	InputID string
	// Stream is the grounded token stream for the image, in the exact wire
	// format the grounding package decodes.
	Stream string
	// PlainText is the linearized text without grounding tags.
	PlainText string
	// Blocks carries the structured regions the stream was built from.
	Blocks []Block
}

// Engine is the provider contract: one image in, one grounded result out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}

// InputOption mutates an Input before submission.
type InputOption func(*Input)

// WithLanguages sets language hints on the input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithMetadata sets engine-specific metadata on the input.
func WithMetadata(metadata map[string]string) InputOption {
	return func(in *Input) {
		if len(metadata) == 0 {
			in.Metadata = nil
			return
		}
		in.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			in.Metadata[k] = v
		}
	}
}

// NewInput builds an input from raw image bytes.
func NewInput(id string, img []byte, format ImageFormat, opts ...InputOption) Input {
	in := Input{ID: id, Image: img, Format: format}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}
