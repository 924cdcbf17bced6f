// Package errs provides the error taxonomy shared by the cart and order core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for each outcome a caller can observe:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: bad arguments
//   - ObjectNotFoundError: a cart, order or product is absent
//   - ProductInactiveError: a product exists but cannot be added to a cart
//   - ProductUnavailableError: a cart line blocks checkout
//   - ErrEmptyCart: checkout of a cart without lines
//   - InvalidTransitionError: an order status change outside the transition table
//   - ConflictError: a uniqueness violation, retried internally by callers
//   - InternalError: a storage failure whose detail must not reach the caller
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies it
package errs
