package bch

import (
	"testing"

	"github.com/bchcore/bchvm/crypto"
	"github.com/bchcore/bchvm/script"
	"github.com/bchcore/bchvm/sighash"
	"github.com/bchcore/bchvm/vm"
)

func testKeyPairN(t *testing.T, seed byte) (priv, pub []byte) {
	priv = make([]byte, 32)
	for i := range priv {
		priv[i] = byte(i+1) ^ seed
	}
	priv[31] |= 0x01 // avoid landing on zero
	pub, err := crypto.DerivePublicKeyCompressed(priv)
	if err != nil {
		t.Fatalf("unexpected error deriving public key: %v", err)
	}
	return priv, pub
}

// build2of3MultisigProgram signs with the first two of three keys, in
// key order, against a 2-of-3 CHECKMULTISIG locking script.
func build2of3MultisigProgram(t *testing.T) []vm.Instruction {
	priv1, pub1 := testKeyPairN(t, 0x01)
	priv2, pub2 := testKeyPairN(t, 0x02)
	_, pub3 := testKeyPairN(t, 0x03)

	locking := []vm.Instruction{
		{Opcode: script.OP_2},
		{Opcode: script.OP_PUSHDATA1, Data: pub1},
		{Opcode: script.OP_PUSHDATA1, Data: pub2},
		{Opcode: script.OP_PUSHDATA1, Data: pub3},
		{Opcode: script.OP_3},
		{Opcode: script.OP_CHECKMULTISIG},
	}

	sigType := sighash.SigHashAll | sighash.SigHashForkID
	ctx := baseContext()
	ctx.CoveredBytecode = script.Serialize(locking)
	digest := sighash.Digest(ctx, sigType)

	der1, err := crypto.SignMessageHashDER(priv1, digest)
	if err != nil {
		t.Fatalf("unexpected signing error: %v", err)
	}
	der2, err := crypto.SignMessageHashDER(priv2, digest)
	if err != nil {
		t.Fatalf("unexpected signing error: %v", err)
	}
	sig1 := append(der1, byte(sigType))
	sig2 := append(der2, byte(sigType))

	unlocking := []vm.Instruction{
		{Opcode: script.OP_0}, // protocol bug value
		{Opcode: script.OP_PUSHDATA1, Data: sig1},
		{Opcode: script.OP_PUSHDATA1, Data: sig2},
	}
	return append(append([]vm.Instruction{}, unlocking...), locking...)
}

func TestCheckMultiSigSucceedsWithTwoOfThree(t *testing.T) {
	instructions := build2of3MultisigProgram(t)
	final := evaluateBCH(instructions, baseContext(), 3)
	if final.Err() != nil {
		t.Fatalf("unexpected error: %v", final.Err())
	}
	if !final.Verified() {
		t.Fatalf("expected 2-of-3 multisig to verify")
	}
}

func TestCheckMultiSigRejectsNonEmptyProtocolBugValue(t *testing.T) {
	instructions := build2of3MultisigProgram(t)
	// The bug-value push is the first unlocking instruction.
	instructions[0] = vm.Instruction{Opcode: script.OP_1}

	final := evaluateBCH(instructions, baseContext(), 3)
	if final.Err() == nil || final.Err().Kind != ErrInvalidProtocolBugValue {
		t.Fatalf("expected ErrInvalidProtocolBugValue, got %v", final.Err())
	}
}

func TestCheckMultiSigRejectsSchnorrSizedSignature(t *testing.T) {
	instructions := build2of3MultisigProgram(t)
	// Replace the first signature with a 65-byte blob (64-byte schnorr
	// body + sighash type byte) of otherwise well-formed shape.
	fakeSchnorr := make([]byte, crypto.SchnorrSignatureLength+1)
	fakeSchnorr[len(fakeSchnorr)-1] = byte(sighash.SigHashAll | sighash.SigHashForkID)
	instructions[1] = vm.Instruction{Opcode: script.OP_PUSHDATA1, Data: fakeSchnorr}

	final := evaluateBCH(instructions, baseContext(), 3)
	if final.Err() == nil || final.Err().Kind != ErrSchnorrSizedSignatureInCheckMultiSig {
		t.Fatalf("expected ErrSchnorrSizedSignatureInCheckMultiSig, got %v", final.Err())
	}
}
