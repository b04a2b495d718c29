package bch

import (
	"github.com/bchcore/bchvm/crypto"
	"github.com/bchcore/bchvm/script"
	"github.com/bchcore/bchvm/sighash"
)

func opHash(h func([]byte) []byte) opFunc {
	return func(s *State) *State {
		v := popOne(s)
		if s.err != nil {
			return s
		}
		pushToStack(s, h(v))
		return s
	}
}

func opCodeSeparator(s *State) *State {
	s.lastCodeSeparator = s.ip - 1
	return s
}

// coveredBytecodeContext returns a copy of the state's transaction
// context with CoveredBytecode filled in from the currently executing
// script, sliced after the last OP_CODESEPARATOR — the piece of the
// context that varies per signature check rather than per program.
func (s *State) coveredBytecodeContext() *sighash.TransactionContext {
	start := s.lastCodeSeparator + 1
	if start < s.coveredScriptFloor {
		start = s.coveredScriptFloor
	}
	ctxCopy := *s.ctx
	ctxCopy.CoveredBytecode = script.Serialize(s.instructions[start:])
	return &ctxCopy
}

func opCheckSig(verify bool) opFunc {
	return func(s *State) *State {
		pub := popOne(s)
		if s.err != nil {
			return s
		}
		sig := popOne(s)
		if s.err != nil {
			return s
		}

		if !script.IsValidPublicKeyEncoding(pub) {
			return s.fail(ErrInvalidPublicKeyEncoding, "invalid public key encoding")
		}
		if !script.IsValidSignatureEncodingBCHTransaction(sig) {
			return s.fail(ErrInvalidSignatureEncoding, "invalid signature encoding")
		}

		success := false
		if len(sig) > 0 {
			body, sigType := script.SplitSignature(sig)
			digest := sighash.Digest(s.coveredBytecodeContext(), sigType)
			if len(body) == crypto.SchnorrSignatureLength {
				success = crypto.VerifySignatureSchnorr(body, pub, digest)
			} else {
				success = crypto.VerifySignatureDERLowS(body, pub, digest)
			}
		}

		if !success && len(sig) != 0 && s.flags.RequireNullSignatureFailures {
			return s.fail(ErrNonNullSignatureFailure, "non-null signature failed verification")
		}

		pushBool(s, success)
		if s.err != nil {
			return s
		}
		if verify {
			return opVerify(s)
		}
		return s
	}
}

func opCheckMultiSig(verify bool) opFunc {
	return func(s *State) *State {
		keyCount := popScriptNumberN(s, 4)
		if s.err != nil {
			return s
		}
		if keyCount < 0 || keyCount > maximumPublicKeysPerMultisig {
			return s.fail(ErrExceedsMaximumMultisigPublicKeyCount, "public key count out of range")
		}
		pubKeys := make([][]byte, keyCount)
		for i := keyCount - 1; i >= 0; i-- {
			pubKeys[i] = popOne(s)
			if s.err != nil {
				return s
			}
		}
		bumpOperationCount(s, int(keyCount))
		if s.err != nil {
			return s
		}

		sigCount := popScriptNumberN(s, 4)
		if s.err != nil {
			return s
		}
		if sigCount < 0 || sigCount > keyCount {
			return s.fail(ErrInsufficientPublicKeys, "signature count out of range")
		}
		sigs := make([][]byte, sigCount)
		for i := sigCount - 1; i >= 0; i-- {
			sigs[i] = popOne(s)
			if s.err != nil {
				return s
			}
		}

		bugValue := popOne(s)
		if s.err != nil {
			return s
		}
		if s.flags.RequireBugValueZero && len(bugValue) != 0 {
			return s.fail(ErrInvalidProtocolBugValue, "protocol bug value must be empty")
		}

		ctx := s.coveredBytecodeContext()

		nullFail := false
		sigIdx, keyIdx, matched := 0, 0, 0
		for sigIdx < len(sigs) && keyIdx < len(pubKeys) {
			sig := sigs[sigIdx]
			pub := pubKeys[keyIdx]

			if !script.IsValidPublicKeyEncoding(pub) {
				return s.fail(ErrInvalidPublicKeyEncoding, "invalid public key encoding")
			}
			if !script.IsValidSignatureEncodingBCHTransaction(sig) {
				return s.fail(ErrInvalidSignatureEncoding, "invalid signature encoding")
			}
			if len(sig) > 0 {
				body, sigType := script.SplitSignature(sig)
				if len(body) == crypto.SchnorrSignatureLength {
					return s.fail(ErrSchnorrSizedSignatureInCheckMultiSig,
						"schnorr-sized signature in CHECKMULTISIG")
				}
				digest := sighash.Digest(ctx, sigType)
				if crypto.VerifySignatureDERLowS(body, pub, digest) {
					matched++
					sigIdx++
					keyIdx++
					continue
				}
				nullFail = true
			}
			keyIdx++
		}
		for ; sigIdx < len(sigs); sigIdx++ {
			if len(sigs[sigIdx]) > 0 {
				nullFail = true
			}
		}

		success := matched == len(sigs)
		if !success && nullFail && s.flags.RequireNullSignatureFailures {
			return s.fail(ErrNonNullSignatureFailure, "non-null signature failed verification in multisig")
		}

		pushBool(s, success)
		if s.err != nil {
			return s
		}
		if verify {
			return opVerify(s)
		}
		return s
	}
}

func opCheckDataSig(verify bool) opFunc {
	return func(s *State) *State {
		pub := popOne(s)
		if s.err != nil {
			return s
		}
		msg := popOne(s)
		if s.err != nil {
			return s
		}
		sig := popOne(s)
		if s.err != nil {
			return s
		}

		if !script.IsValidPublicKeyEncoding(pub) {
			return s.fail(ErrInvalidPublicKeyEncoding, "invalid public key encoding")
		}

		success := false
		if len(sig) > 0 {
			digest := crypto.Hash256(msg)
			if len(sig) == crypto.SchnorrSignatureLength {
				success = crypto.VerifySignatureSchnorr(sig, pub, digest)
			} else {
				if _, err := crypto.ParseStrictDER(sig); err != nil {
					return s.fail(ErrInvalidSignatureEncoding, "invalid signature encoding")
				}
				success = crypto.VerifySignatureDERLowS(sig, pub, digest)
			}
		}
		if !success && len(sig) != 0 && s.flags.RequireNullSignatureFailures {
			return s.fail(ErrNonNullSignatureFailure, "non-null signature failed verification")
		}

		pushBool(s, success)
		if s.err != nil {
			return s
		}
		if verify {
			return opVerify(s)
		}
		return s
	}
}

func registerCryptoOps(ops map[byte]opFunc, flags Flags) {
	ops[script.OP_RIPEMD160] = counted(skippable(opHash(crypto.Ripemd160)))
	ops[script.OP_SHA1] = counted(skippable(opHash(crypto.Sha1)))
	ops[script.OP_SHA256] = counted(skippable(opHash(crypto.Sha256)))
	ops[script.OP_HASH160] = counted(skippable(opHash(crypto.Hash160)))
	ops[script.OP_HASH256] = counted(skippable(opHash(crypto.Hash256)))
	ops[script.OP_CODESEPARATOR] = counted(skippable(opCodeSeparator))
	ops[script.OP_CHECKSIG] = counted(skippable(opCheckSig(false)))
	ops[script.OP_CHECKSIGVERIFY] = counted(skippable(opCheckSig(true)))
	ops[script.OP_CHECKMULTISIG] = counted(skippable(opCheckMultiSig(false)))
	ops[script.OP_CHECKMULTISIGVERIFY] = counted(skippable(opCheckMultiSig(true)))
	ops[script.OP_CHECKDATASIG] = counted(skippable(opCheckDataSig(false)))
	ops[script.OP_CHECKDATASIGVERIFY] = counted(skippable(opCheckDataSig(true)))
}
