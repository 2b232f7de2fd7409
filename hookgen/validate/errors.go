package validate

import (
	"strings"

	"go.uber.org/multierr"

	"github.com/teranos/qntx-hooks/hookgen/decl"
)

// Error is one diagnostic about a hook declaration. It unwraps to one of
// errors.ErrNotAbstract, errors.ErrUnknownVariant or
// errors.ErrMalformedSignature.
type Error struct {
	Container   string
	Declaration string
	Pos         decl.Position
	Message     string
	Cause       error
}

func (e Error) Error() string {
	return e.Container + "." + e.Declaration + ": " + e.Message
}

func (e Error) Unwrap() error {
	return e.Cause
}

// Errors is the list of diagnostics of a validation run, in declaration
// order.
type Errors []Error

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Err combines the diagnostics into a single error, nil when empty.
func (es Errors) Err() error {
	var err error
	for _, e := range es {
		err = multierr.Append(err, e)
	}
	return err
}
