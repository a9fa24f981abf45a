// Package errs provides the typed errors shared by the fulfillment service.
//
// Every error type follows the same pattern:
//   - a sentinel variable (e.g. ErrValueIsRequired) usable with errors.Is
//   - a struct carrying the details of the failure
//   - constructors with and without a cause
//   - Error() for the message and Unwrap() returning the sentinel
//
// The sentinels are grouped into the failure classes the adapters translate
// into transport codes:
//   - validation: ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange
//   - not found: ErrObjectNotFound
//   - lifecycle: ErrInvalidStateTransition
//   - authorization: ErrPermissionDenied
//   - external: ErrUpstreamUnavailable, ErrStoreFailure
package errs
