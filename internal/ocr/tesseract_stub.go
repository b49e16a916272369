//go:build !cgo

package ocr

import "image"

const backend = "none"

// Words always fails with ErrUnavailable.
func Words(image.Image, string) ([]Word, error) {
	return nil, ErrUnavailable
}

// Available reports the backend status.
func Available() Info {
	return Info{Available: false, Backend: backend, Error: ErrUnavailable.Error()}
}
