// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes generic validation errors:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//
// And the fulfillment taxonomy:
//   - InsufficientStockError: A reservation found fewer units than requested
//   - WeightExceededError: A shipment is heavier than the carrier limit
//   - InvalidTransitionError: An order or vehicle state change is not allowed
//   - PaymentNotVerifiedError: The payment gateway did not confirm the charge
//   - ErrRouteUnavailable: The route planner failed or timed out (retryable)
//   - ErrAuthFailed: A session or request could not be authenticated
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
package errs
