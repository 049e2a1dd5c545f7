// Package errors provides structured error handling with error codes for the
// multi-user-type services.
//
// Every failure that crosses a package boundary carries an ErrorCode, a
// human-readable message, optional details and an optional wrapped cause. The
// code maps onto an HTTP status so handlers can answer without inspecting
// messages.
//
// # Basic Usage
//
//	import apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
//
//	// Create a simple error
//	err := apperrors.New(apperrors.ErrCodeUnknownUserClass, "no such user class")
//
//	// Wrap an existing error
//	err := apperrors.Wrap(decodeErr, apperrors.ErrCodeInvalidConfiguration, "user type user_one")
//
//	// Inspect
//	if apperrors.IsCode(err, apperrors.ErrCodeUnknownContext) {
//		// ...
//	}
//
// # Error Codes
//
// Generic:
//   - ErrCodeInternal
//   - ErrCodeInvalidInput
//   - ErrCodeNotFound
//   - ErrCodeAlreadyExists
//   - ErrCodeValidationFailed
//
// User types:
//   - ErrCodeInvalidConfiguration
//   - ErrCodeUnknownUserClass
//   - ErrCodeUnknownContext
//   - ErrCodeUnknownFactory
//   - ErrCodeUnknownFormType
//
// Request handling:
//   - ErrCodeResourceUnavailable
//   - ErrCodeRateLimited
package errors
