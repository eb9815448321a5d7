package fabgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/fabgo/binding"
	"github.com/hupe1980/fabgo/resolve"
)

var (
	// ErrNoDescriptors is returned when construction receives an empty
	// descriptor list.
	ErrNoDescriptors = errors.New("no descriptors to build from")

	// ErrUnknownBinding is returned when a binding name set on a Fab was
	// never interned into its World.
	ErrUnknownBinding = errors.New("unknown binding name")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, resolve.ErrEmptyModifierSet) {
		return fmt.Errorf("%w: %w", ErrNoDescriptors, err)
	}
	if errors.Is(err, binding.ErrUnknownBinding) {
		return fmt.Errorf("%w: %w", ErrUnknownBinding, err)
	}

	return err
}
