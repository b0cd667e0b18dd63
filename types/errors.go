package types

import (
	"errors"
	"fmt"
)

// ErrorCode is the numeric error code of the pool protocol.
type ErrorCode uint16

const (
	RevertedSignagePoint         ErrorCode = 1
	TooLate                      ErrorCode = 2
	NotFound                     ErrorCode = 3
	InvalidProof                 ErrorCode = 4
	ProofNotGoodEnough           ErrorCode = 5
	InvalidDifficulty            ErrorCode = 6
	InvalidSignature             ErrorCode = 7
	ServerException              ErrorCode = 8
	InvalidP2SingletonPuzzleHash ErrorCode = 9
	FarmerNotKnown               ErrorCode = 10
	FarmerAlreadyKnown           ErrorCode = 11
	InvalidAuthenticationToken   ErrorCode = 12
	InvalidPayoutInstructions    ErrorCode = 13
	InvalidSingleton             ErrorCode = 14
	DelayTimeTooShort            ErrorCode = 15
	RequestFailed                ErrorCode = 16
)

var codeNames = map[ErrorCode]string{
	RevertedSignagePoint:         "REVERTED_SIGNAGE_POINT",
	TooLate:                      "TOO_LATE",
	NotFound:                     "NOT_FOUND",
	InvalidProof:                 "INVALID_PROOF",
	ProofNotGoodEnough:           "PROOF_NOT_GOOD_ENOUGH",
	InvalidDifficulty:            "INVALID_DIFFICULTY",
	InvalidSignature:             "INVALID_SIGNATURE",
	ServerException:              "SERVER_EXCEPTION",
	InvalidP2SingletonPuzzleHash: "INVALID_P2_SINGLETON_PUZZLE_HASH",
	FarmerNotKnown:               "FARMER_NOT_KNOWN",
	FarmerAlreadyKnown:           "FARMER_ALREADY_KNOWN",
	InvalidAuthenticationToken:   "INVALID_AUTHENTICATION_TOKEN",
	InvalidPayoutInstructions:    "INVALID_PAYOUT_INSTRUCTIONS",
	InvalidSingleton:             "INVALID_SINGLETON",
	DelayTimeTooShort:            "DELAY_TIME_TOO_SHORT",
	RequestFailed:                "REQUEST_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ERROR_CODE(%d)", uint16(c))
}

// PoolError is an error returned to the requesting farmer.
type PoolError struct {
	Code    ErrorCode
	Message string
}

func NewPoolError(code ErrorCode, format string, args ...any) *PoolError {
	return &PoolError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *PoolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any PoolError with the same code.
func (e *PoolError) Is(target error) bool {
	var other *PoolError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// Sentinels for errors.Is comparisons.
var (
	ErrTooLate                    = &PoolError{Code: TooLate}
	ErrNotFound                   = &PoolError{Code: NotFound}
	ErrInvalidProof               = &PoolError{Code: InvalidProof}
	ErrProofNotGoodEnough         = &PoolError{Code: ProofNotGoodEnough}
	ErrInvalidSignature           = &PoolError{Code: InvalidSignature}
	ErrInvalidCommitment          = &PoolError{Code: InvalidP2SingletonPuzzleHash}
	ErrFarmerNotKnown             = &PoolError{Code: FarmerNotKnown}
	ErrFarmerAlreadyKnown         = &PoolError{Code: FarmerAlreadyKnown}
	ErrInvalidAuthenticationToken = &PoolError{Code: InvalidAuthenticationToken}
	ErrInvalidPayoutInstructions  = &PoolError{Code: InvalidPayoutInstructions}
	ErrInvalidSingleton           = &PoolError{Code: InvalidSingleton}
	ErrDelayTimeTooShort          = &PoolError{Code: DelayTimeTooShort}
	ErrRequestFailed              = &PoolError{Code: RequestFailed}
)

// AsPoolError converts err into the error reported to the farmer. Unknown errors
// become SERVER_EXCEPTION.
func AsPoolError(err error) *PoolError {
	var perr *PoolError
	if errors.As(err, &perr) {
		return perr
	}
	return &PoolError{Code: ServerException, Message: err.Error()}
}
