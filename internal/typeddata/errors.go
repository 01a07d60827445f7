package typeddata

import (
	"github.com/cockroachdb/errors"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
)

// ErrorKind separates malformed text from well-formed JSON of the wrong shape.
type ErrorKind int

const (
	KindSyntax ErrorKind = iota + 1
	KindShape
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindShape:
		return "shape"
	default:
		return "unknown"
	}
}

var (
	ErrSyntax = errors.New("typed data: syntax")
	ErrShape  = errors.New("typed data: shape")

	errInvalidJSON = errors.New("invalid JSON")
)

// ParseError is the rejection value of Parse and Format. It never escapes as a panic.
type ParseError struct {
	Kind    ErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrSyntax:
		return e.Kind == KindSyntax
	case ErrShape:
		return e.Kind == KindShape
	}
	return false
}

func syntaxError(err error) *ParseError {
	return &ParseError{Kind: KindSyntax, Message: err.Error()}
}

func shapeError() *ParseError {
	return &ParseError{Kind: KindShape, Message: constants.ShapeErrorText}
}

// KindOf reports the ParseError kind carried by err, or 0.
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
