package bch

import (
	"errors"

	"github.com/bchcore/bchvm/script"
)

var errNegativeLocktime = errors.New("negative locktime argument")

const locktimeThreshold = 500000000

const (
	seqLockTimeDisableFlag uint32 = 1 << 31
	seqLockTimeTypeFlag    uint32 = 1 << 22
	seqLockTimeMask        uint32 = 0x0000ffff
)

func opCheckLockTimeVerify(s *State) *State {
	if len(s.stack) == 0 {
		return s.fail(ErrEmptyStack, "CHECKLOCKTIMEVERIFY requires a stack element")
	}
	top := s.stack[len(s.stack)-1]
	arg, err := decodeLocktimeArg(s, top)
	if err != nil {
		return s
	}

	txLocktime := int64(s.ctx.Locktime)
	if (arg < locktimeThreshold) != (txLocktime < locktimeThreshold) {
		return s.fail(ErrUnsatisfiedLocktime, "locktime type mismatch")
	}
	if arg > txLocktime {
		return s.fail(ErrUnsatisfiedLocktime, "locktime not yet reached")
	}
	if s.ctx.SequenceNumber == 0xffffffff {
		return s.fail(ErrUnsatisfiedLocktime, "input sequence number finalizes the transaction")
	}
	return s
}

func decodeLocktimeArg(s *State, top []byte) (int64, error) {
	v, err := script.DecodeStrict(top, 5, s.flags.RequireMinimalEncoding)
	if err != nil {
		s.fail(ErrInvalidNaturalNumber, err.Error())
		return 0, err
	}
	if v < 0 {
		s.fail(ErrInvalidNaturalNumber, "negative locktime argument")
		return 0, errNegativeLocktime
	}
	return v, nil
}

func opCheckSequenceVerify(s *State) *State {
	if len(s.stack) == 0 {
		return s.fail(ErrEmptyStack, "CHECKSEQUENCEVERIFY requires a stack element")
	}
	top := s.stack[len(s.stack)-1]
	v, err := script.DecodeStrict(top, 5, s.flags.RequireMinimalEncoding)
	if err != nil {
		return s.fail(ErrInvalidNaturalNumber, err.Error())
	}
	if v < 0 {
		return s.fail(ErrInvalidNaturalNumber, "negative sequence argument")
	}
	arg := uint32(v)

	if arg&seqLockTimeDisableFlag != 0 {
		return s
	}
	if s.ctx.Version < 2 {
		return s.fail(ErrUnsatisfiedSequenceNumber, "transaction version too old for relative locktime")
	}
	txSeq := s.ctx.SequenceNumber
	if txSeq&seqLockTimeDisableFlag != 0 {
		return s.fail(ErrUnsatisfiedSequenceNumber, "input sequence number disables relative locktime")
	}
	if arg&seqLockTimeTypeFlag != txSeq&seqLockTimeTypeFlag {
		return s.fail(ErrUnsatisfiedSequenceNumber, "relative locktime type mismatch")
	}
	if arg&seqLockTimeMask > txSeq&seqLockTimeMask {
		return s.fail(ErrUnsatisfiedSequenceNumber, "relative locktime not yet satisfied")
	}
	return s
}

func registerLocktimeOps(ops map[byte]opFunc) {
	ops[script.OP_CHECKLOCKTIMEVERIFY] = counted(skippable(opCheckLockTimeVerify))
	ops[script.OP_CHECKSEQUENCEVERIFY] = counted(skippable(opCheckSequenceVerify))
}
