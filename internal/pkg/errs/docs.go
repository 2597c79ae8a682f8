// Package errs provides the standardized error types of the restaurant service.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//     (the validation family, see IsValidation)
//   - ObjectNotFoundError: a referenced order, dish or table does not exist
//   - InvalidTransitionError: an operation is not permitted from the current state
//   - ConflictError: a concurrent writer won a compare-and-set race
//   - StorageError: the persistence layer failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
