package schemas

import (
	"errors"
	"fmt"
)

// ErrUnsupportedOperation marks errors returned when a provider kind does
// not expose a requested capability. Match with errors.Is.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// NewUnsupportedOperationError reports that the given provider kind cannot
// perform the named operation.
func NewUnsupportedOperationError(operation string, provider ModelProvider) error {
	return fmt.Errorf("%w: provider %q does not support %s", ErrUnsupportedOperation, provider, operation)
}

// ErrCredentialMissing marks credential-resolution failures. The message
// carries the guidance shown to the user.
var ErrCredentialMissing = errors.New("credential missing")

// NewCredentialMissingError reports that the referenced secret could not be
// resolved and must be entered again.
func NewCredentialMissingError(ref string) error {
	return fmt.Errorf("%w: secret %q could not be resolved, please re-enter the credential", ErrCredentialMissing, ref)
}
