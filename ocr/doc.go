// Package ocr recognizes text in pictures so it can serve as their alt
// text.
//
// The engine is Tesseract, reached through gosseract, and is only compiled
// in with the "ocr" build tag:
//
//	go build -tags ocr
//
// Tesseract must be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Without the tag, New returns ErrOCRNotEnabled.
package ocr
