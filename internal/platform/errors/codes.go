// Package errors provides structured error handling for the knowledge engine.
package errors

import "errors"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Campaign registry errors
	CodeUnknownCampaign   Code = "UNKNOWN_CAMPAIGN"
	CodeUnsupportedLayout Code = "UNSUPPORTED_LAYOUT"
	CodeCampaignIDEmpty   Code = "CAMPAIGN_ID_EMPTY"
	CodeConfigInvalid     Code = "CONFIG_INVALID"

	// Corpus loading errors
	CodeEmptyCampaign Code = "EMPTY_CAMPAIGN"

	// Index errors
	CodeNotFound     Code = "NOT_FOUND"
	CodeIndexMissing Code = "INDEX_MISSING"

	// Dice/mechanics errors
	CodeDiceInvalidExpression Code = "DICE_INVALID_EXPRESSION"

	// Storage errors
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
)

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}
