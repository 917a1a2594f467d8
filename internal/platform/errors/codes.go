// Package errors provides structured error handling for the diceodel
// services.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Keep-policy errors
	CodeKeepNegativeCount Code = "KEEP_NEGATIVE_COUNT"
	CodeKeepPolicyInvalid Code = "KEEP_POLICY_INVALID"

	// Roll errors
	CodeRollEmpty         Code = "ROLL_EMPTY"
	CodeRollNotComparable Code = "ROLL_NOT_COMPARABLE"

	// Dice errors
	CodeDiceMissing     Code = "DICE_MISSING"
	CodeDiceInvalidSpec Code = "DICE_INVALID_SPEC"
	CodeHexDigitInvalid Code = "HEX_DIGIT_INVALID"

	// Storage errors
	CodeNotFound        Code = "NOT_FOUND"
	CodeStorage         Code = "STORAGE_FAILURE"
	CodeHistoryDisabled Code = "HISTORY_DISABLED"
)

// GRPCCode maps a domain error code to a gRPC status code.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - the request itself is malformed
	case CodeKeepNegativeCount,
		CodeKeepPolicyInvalid,
		CodeRollEmpty,
		CodeDiceMissing,
		CodeDiceInvalidSpec,
		CodeHexDigitInvalid:
		return codes.InvalidArgument

	// FailedPrecondition - the operation needs state the deployment lacks
	case CodeRollNotComparable, CodeHistoryDisabled:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
