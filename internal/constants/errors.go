package constants

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of these so the HTTP
// layer can map it to a status code with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrLimitReached = errors.New("limit reached")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// DomainError carries a user-facing message and its kind.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string { return e.Message }
func (e *DomainError) Unwrap() error { return e.Kind }

func newError(kind error, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

// Validationf builds an ad-hoc validation error.
func Validationf(format string, args ...any) error {
	return newError(ErrValidation, fmt.Sprintf(format, args...))
}

var (
	ErrAircraftNotFound   = newError(ErrNotFound, "Cannot find aircraft")
	ErrContractNotFound   = newError(ErrNotFound, "Cannot find contract")
	ErrGroupNotFound      = newError(ErrNotFound, "Group not found")
	ErrUserNotFound       = newError(ErrNotFound, "User not found")
	ErrInvitationNotFound = newError(ErrNotFound, "Invitation not found")
	ErrImageNotFound      = newError(ErrNotFound, "Image not found")

	ErrActiveContractExists = newError(ErrConflict, "Aircraft already has an active contract")
	ErrContractLimitReached = newError(ErrConflict, fmt.Sprintf("Maximum %d contracts allowed per aircraft", MaxContractsPerAircraft))
	ErrAircraftSold         = newError(ErrConflict, "Aircraft has been sold")
	ErrContractFinished     = newError(ErrConflict, "Contract is already finished")
	ErrRegistrationExists   = newError(ErrConflict, "Registration code already exists")
	ErrUsernameTaken        = newError(ErrConflict, "Username already taken")
	ErrInvitationExists     = newError(ErrConflict, "Invitation code already exists")

	ErrAircraftLimitReached = newError(ErrLimitReached, fmt.Sprintf("Aircraft limit reached. Maximum %d aircrafts allowed", MaxAircraft))
	ErrGroupLimitReached    = newError(ErrLimitReached, fmt.Sprintf("Aircraft group limit reached. Maximum %d groups allowed", MaxAircraftGroups))

	ErrInvalidContractType  = newError(ErrValidation, "Invalid contract type")
	ErrPlayerRequired       = newError(ErrValidation, "Player name is required for Player contracts")
	ErrDestinationRequired  = newError(ErrValidation, "Destination is required")
	ErrInvalidProfit        = newError(ErrValidation, "Profit must be a finite number")
	ErrInvalidSize          = newError(ErrValidation, "Invalid aircraft size")
	ErrInvalidAircraftType  = newError(ErrValidation, "Invalid aircraft type")
	ErrModelRequired        = newError(ErrValidation, "Aircraft model is required")
	ErrInvalidRegistration  = newError(ErrValidation, fmt.Sprintf("Registration code must be 1-%d characters", MaxRegistrationCodeLength))
	ErrInvalidAirport       = newError(ErrValidation, fmt.Sprintf("Airport code must be 1-%d characters", MaxAirportCodeLength))
	ErrInvalidConfiguration = newError(ErrValidation, "Configuration counts must not be negative")
	ErrInvalidGroupName     = newError(ErrValidation, fmt.Sprintf("Group name must be 1-%d characters", MaxAircraftGroupNameLength))
	ErrInvalidGroupDesc     = newError(ErrValidation, fmt.Sprintf("Group description must be at most %d characters", MaxAircraftGroupDescriptionLength))
	ErrInvalidColour        = newError(ErrValidation, "Colour must be a hex value like #1a2b3c")
	ErrInvalidVisibility    = newError(ErrValidation, "Invalid group visibility")
	ErrInvalidUsername      = newError(ErrValidation, fmt.Sprintf("Username must be %d-%d characters", MinUsernameLength, MaxUsernameLength))
	ErrInvalidPassword      = newError(ErrValidation, fmt.Sprintf("Password must be %d-%d characters", MinPasswordLength, MaxPasswordLength))
	ErrInvalidInvitation    = newError(ErrValidation, "Invalid or exhausted invitation code")
	ErrCaptchaFailed        = newError(ErrValidation, "CAPTCHA verification failed")
	ErrInvalidSortKey       = newError(ErrValidation, "Invalid sort key")
	ErrInvalidSortMode      = newError(ErrValidation, "Invalid sort mode")
	ErrInvalidFilterKey     = newError(ErrValidation, "Invalid filter key")
	ErrUnsupportedImage     = newError(ErrValidation, "Images Only!")
	ErrImageTooLarge        = newError(ErrValidation, fmt.Sprintf("Image must be at most %d bytes", MaxImageBytes))
	ErrNoImageSelected      = newError(ErrValidation, "No file selected")
	ErrInvalidRemainingUses = newError(ErrValidation, "Remaining uses must be positive")

	ErrMissingToken       = newError(ErrUnauthorized, "No token, authorization denied")
	ErrInvalidToken       = newError(ErrUnauthorized, "Token is not valid")
	ErrInvalidCredentials = newError(ErrUnauthorized, "Invalid credentials")
	ErrRegisteredOnly     = newError(ErrUnauthorized, "Only registered users can view this group.")

	ErrNotOwner     = newError(ErrForbidden, "Forbidden")
	ErrAccessDenied = newError(ErrForbidden, "Access denied")
)
