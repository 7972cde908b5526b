package domain

import "errors"

// Business-rule violations are reported as distinct sentinel errors so the
// calling layer can attach the message to the correct input field.
var (
	// Validation
	ErrInvalidDate     = errors.New("invalid date, expected yyyy-mm-dd")
	ErrInvalidDocument = errors.New("document must be numeric")
	ErrReasonRequired  = errors.New("cancellation reason is required")

	// Preconditions
	ErrStartDateInPast = errors.New("start date must not be in the past")
	ErrEndBeforeStart  = errors.New("end date must not be before start date")
	ErrCancelCutoff    = errors.New("reservations cannot be cancelled less than 24 hours before the start date")

	// Conflicts
	ErrVehicleConflict = errors.New("vehicle is already reserved in the selected period")
	ErrDriverConflict  = errors.New("driver already holds a reservation in the selected period")
	ErrPlateTaken      = errors.New("license plate is already registered")

	// Payment
	ErrCardNotFound      = errors.New("card not found")
	ErrWrongPIN          = errors.New("wrong card pin")
	ErrExpiryMismatch    = errors.New("card expiry does not match")
	ErrCardExpired       = errors.New("card has expired")
	ErrInsufficientFunds = errors.New("insufficient card balance")
	ErrHolderMismatch    = errors.New("card holder document does not match")

	// State transitions
	ErrVehicleNotAvailable = errors.New("vehicle is not available")
	ErrInvalidTransition   = errors.New("vehicle is not in the required state for this transition")
	ErrNotCancellable      = errors.New("reservation is not in a cancellable state")

	// Authorization
	ErrNotOwner           = errors.New("reservation does not belong to this user")
	ErrAdminRequired      = errors.New("administrator privilege required")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Lookups
	ErrNotFound = errors.New("not found")

	// Deletion guard
	ErrVehicleHasReservations = errors.New("vehicle has reservations that are not cancelled")
)
