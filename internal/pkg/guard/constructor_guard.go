// Package guard detects domain values that bypassed their constructors.
package guard

import "errors"

// ErrNotConstructed is returned by Validate when no specific error is supplied.
var ErrNotConstructed = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in aggregates and value objects. Its zero value
// marks an instance that was declared directly instead of being built by NewX
// or RestoreX, which lets Validate reject it before any behavior runs.
//
// Example:
//
//	type Caller struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func (c Caller) Validate() error {
//	    return c.guard.Validate(ErrCallerNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrNotConstructed when nil) for a zero guard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrNotConstructed
	}
	return validationError
}
