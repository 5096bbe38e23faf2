package commands

import (
	"errors"
	"fmt"
)

// ErrInvalidPayload marks payloads rejected by schema validation.
var ErrInvalidPayload = errors.New("commands: invalid payload")

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
}
