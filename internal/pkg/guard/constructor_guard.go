// Package guard provides the ConstructorGuard pattern used by commands
// and value objects to ensure they are only created through their
// designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by
// ConstructorGuard.Validate() when a nil error is passed as the
// validation error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether a struct was created through its
// constructor or as a zero value. Embed it in a command or value object
// and set it with NewConstructorGuard inside the constructor; Validate
// then fails for any zero-value instance.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was constructed through its
// constructor, the provided validationError otherwise. A nil
// validationError falls back to ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
