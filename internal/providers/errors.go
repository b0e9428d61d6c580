package providers

import (
	"errors"
	"fmt"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
)

// ProviderError represents a provider-specific error
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a ProviderError for a missing resource
func IsNotFound(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == constants.ErrCodeResourceNotFound
}
