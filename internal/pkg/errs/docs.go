// Package errs provides standardized error types for the worker
// marketplace application. It implements a consistent pattern for error
// creation, formatting, and unwrapping that is used throughout the
// application.
//
// The package covers the failure taxonomy of the session core:
//   - ObjectNotFoundError: an operation referenced an unknown object
//   - ValueIsInvalidError: a supplied value failed validation
//   - ValueIsRequiredError: a required value is missing
//   - ConflictError: a lifecycle guard was violated (active-order limit,
//     stale transition, lost race against another worker)
//   - TransientError: a network/service failure on a backend call
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method resolving to the sentinel for errors.Is checks
package errs
