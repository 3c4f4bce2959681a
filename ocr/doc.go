// Package ocr defines the engine contract for producing grounded token
// streams from images. The primary producer is the remote inference backend,
// which is out of this library's hands; engines defined here exist so the
// client can fall back to local recognition (see the tesseract subpackage)
// and so tests can feed the decoder realistic streams. Every engine speaks
// the same wire format the grounding package consumes.
package ocr
