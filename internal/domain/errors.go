package domain

import "errors"

// Domain errors.
var (
	ErrTemplateNotFound  = errors.New("template document not found")
	ErrTemplateInvalid   = errors.New("template document is not a valid, non-empty object")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrInvalidLocale     = errors.New("invalid locale identifier")
	ErrUnknownComponent  = errors.New("component not defined by the template")
	ErrMalformedDocument = errors.New("malformed document")
)
