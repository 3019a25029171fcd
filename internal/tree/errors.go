package tree

import (
	"fmt"

	oerrors "github.com/coe-tools/idremap/internal/errors"
	"github.com/coe-tools/idremap/internal/nbt"
)

// UnsupportedKindError reports a node of a kind the rebuilder does not know.
type UnsupportedKindError struct {
	Kind nbt.Kind
	Path string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported tag kind %s at %q", e.Kind, e.Path)
}

func (e *UnsupportedKindError) Unwrap() error {
	return oerrors.ErrUnsupportedTagKind
}

// ElementKindError reports a transformed list element that no longer
// matches the list's element kind.
type ElementKindError struct {
	Path string
	Want nbt.Kind
	Got  nbt.Kind
}

func (e *ElementKindError) Error() string {
	return fmt.Sprintf("list element at %q became %s, list holds %s", e.Path, e.Got, e.Want)
}

// DivergedError reports a transform that never signalled completion.
type DivergedError struct {
	Path   string
	Passes int
}

func (e *DivergedError) Error() string {
	return fmt.Sprintf("transform did not settle at %q after %d passes", e.Path, e.Passes)
}
