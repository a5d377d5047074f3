package document

import "errors"

var (
	// ErrInvalidGeometry reports a crop box that is empty once clamped to the image.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrUnknownFilterKernel reports a filter name outside the registry.
	ErrUnknownFilterKernel = errors.New("unknown filter kernel")
	// ErrMissingResource reports a font or overlay bitmap that could not be used.
	ErrMissingResource = errors.New("missing resource")
	// ErrNoDocumentLoaded reports an edit requested before any image was opened.
	ErrNoDocumentLoaded = errors.New("no document loaded")
)
