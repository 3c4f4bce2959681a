// Package grounding decodes the "grounded" token stream emitted live by
// DeepSeek-OCR style backends. The stream interleaves free text with tagged
// regions of the form
//
//	<|ref|>LABEL<|/ref|><|det|>[[x1, y1, x2, y2]]<|/det|>
//
// and is only well-formed at region boundaries. Decoding is a pure function
// of the current stream snapshot: it can be re-run on every poll tick while
// the stream is still growing, and regions whose closing tags have not yet
// arrived simply stay invisible until they have.
package grounding
