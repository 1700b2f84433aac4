package domain

import "errors"

var (
	ErrNetwork             = errors.New("document download failed")
	ErrSourceNotFound      = errors.New("document not found")
	ErrObjectStorage       = errors.New("object storage download failed")
	ErrMalformedInput      = errors.New("malformed request input")
	ErrNoTextExtracted     = errors.New("no text extracted")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
