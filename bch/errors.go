package bch

import "fmt"

// ErrorKind is the closed enumeration of script evaluation failures.
// Once set on a State, evaluation short-circuits: every further step
// is an identity transition.
type ErrorKind int

const (
	ErrMalformedPush ErrorKind = iota + 1
	ErrUnbalancedConditional
	ErrEmptyStack
	ErrInvalidStackIndex
	ErrExceededMaximumStackDepth
	ErrExceededMaximumOperationCount
	ErrExceededMaximumOpcode
	ErrDisabledOpcode
	ErrUnknownOpcode
	ErrInvalidNaturalNumber
	ErrNonMinimallyEncodedScriptNumber
	ErrExceedsMaximumMultisigPublicKeyCount
	ErrInsufficientPublicKeys
	ErrInvalidProtocolBugValue
	ErrInvalidPublicKeyEncoding
	ErrInvalidSignatureEncoding
	ErrSchnorrSizedSignatureInCheckMultiSig
	ErrNonNullSignatureFailure
	ErrUnsatisfiedLocktime
	ErrUnsatisfiedSequenceNumber
	ErrFailedVerify
	ErrCalledReturn
	ErrExceededMaximumElementSize
)

var errorKindNames = map[ErrorKind]string{
	ErrMalformedPush:                         "malformedPush",
	ErrUnbalancedConditional:                 "unbalancedConditional",
	ErrEmptyStack:                            "emptyStack",
	ErrInvalidStackIndex:                     "invalidStackIndex",
	ErrExceededMaximumStackDepth:              "exceededMaximumStackDepth",
	ErrExceededMaximumOperationCount:         "exceededMaximumOperationCount",
	ErrExceededMaximumOpcode:                 "exceededMaximumOpcode",
	ErrDisabledOpcode:                        "disabledOpcode",
	ErrUnknownOpcode:                         "unknownOpcode",
	ErrInvalidNaturalNumber:                  "invalidNaturalNumber",
	ErrNonMinimallyEncodedScriptNumber:       "nonMinimallyEncodedScriptNumber",
	ErrExceedsMaximumMultisigPublicKeyCount:  "exceedsMaximumMultisigPublicKeyCount",
	ErrInsufficientPublicKeys:                "insufficientPublicKeys",
	ErrInvalidProtocolBugValue:               "invalidProtocolBugValue",
	ErrInvalidPublicKeyEncoding:              "invalidPublicKeyEncoding",
	ErrInvalidSignatureEncoding:              "invalidSignatureEncoding",
	ErrSchnorrSizedSignatureInCheckMultiSig:  "schnorrSizedSignatureInCheckMultiSig",
	ErrNonNullSignatureFailure:               "nonNullSignatureFailure",
	ErrUnsatisfiedLocktime:                   "unsatisfiedLocktime",
	ErrUnsatisfiedSequenceNumber:             "unsatisfiedSequenceNumber",
	ErrFailedVerify:                          "failedVerify",
	ErrCalledReturn:                          "calledReturn",
	ErrExceededMaximumElementSize:            "exceededMaximumElementSize",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ScriptError is the terminal error a State carries once evaluation has
// failed: the error kind, the instruction pointer at which it occurred,
// and an optional human-readable detail.
type ScriptError struct {
	Kind ErrorKind
	IP   int
	Msg  string
}

func (e *ScriptError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s at ip=%d", e.Kind, e.IP)
	}
	return fmt.Sprintf("%s at ip=%d: %s", e.Kind, e.IP, e.Msg)
}

func newError(ip int, kind ErrorKind, msg string) *ScriptError {
	return &ScriptError{Kind: kind, IP: ip, Msg: msg}
}
