package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLayout is returned for names outside Names
	ErrUnknownLayout = errors.New("unknown layout")
	// ErrInvalidParams is returned by Params.Validate
	ErrInvalidParams = errors.New("invalid layout params")
)

func paramError(key string, v any) error {
	return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParams, key, v)
}
