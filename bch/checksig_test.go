package bch

import (
	"testing"

	"github.com/bchcore/bchvm/crypto"
	"github.com/bchcore/bchvm/script"
	"github.com/bchcore/bchvm/sighash"
	"github.com/bchcore/bchvm/vm"
)

func testKeyPair(t *testing.T) (priv, pub []byte) {
	priv = make([]byte, 32)
	for i := range priv {
		priv[i] = byte(i + 1)
	}
	pub, err := crypto.DerivePublicKeyCompressed(priv)
	if err != nil {
		t.Fatalf("unexpected error deriving public key: %v", err)
	}
	return priv, pub
}

func baseContext() *sighash.TransactionContext {
	ctx := &sighash.TransactionContext{
		Version:         2,
		Outpoints:       []sighash.Outpoint{{Index: 0}},
		SequenceNumbers: []uint32{0xffffffff},
		InputIndex:      0,
		OutpointIndex:   0,
		OutputValue:     50000,
		SequenceNumber:  0xffffffff,
		Outputs:         [][]byte{{0x01}},
		Locktime:        0,
	}
	ctx.CorrespondingOutput = ctx.Outputs[0]
	return ctx
}

// buildCheckSigProgram builds an unlocking `<sig>` plus locking
// `<pubkey> CHECKSIG` program, signing over the locking script alone so
// the signature never has to cover its own bytes.
func buildCheckSigProgram(t *testing.T, priv, pub []byte, sigType sighash.SigHashType, corrupt bool) []vm.Instruction {
	locking := []vm.Instruction{
		{Opcode: script.OP_PUSHDATA1, Data: pub},
		{Opcode: script.OP_CHECKSIG},
	}

	ctx := baseContext()
	ctx.CoveredBytecode = script.Serialize(locking)
	digest := sighash.Digest(ctx, sigType)

	der, err := crypto.SignMessageHashDER(priv, digest)
	if err != nil {
		t.Fatalf("unexpected signing error: %v", err)
	}
	if corrupt {
		der[len(der)-1] ^= 0x01
	}
	sig := append(der, byte(sigType))

	unlocking := []vm.Instruction{{Opcode: script.OP_PUSHDATA1, Data: sig}}
	return append(append([]vm.Instruction{}, unlocking...), locking...)
}

func evaluateBCH(instructions []vm.Instruction, ctx *sighash.TransactionContext, unlockingLen int) *State {
	ctx.CoveredScriptStart = unlockingLen
	is := NewInstructionSet(DefaultFlags())
	program := vm.Program[*sighash.TransactionContext]{Instructions: instructions, Context: ctx}
	return vm.Evaluate[*State, *sighash.TransactionContext](is, program)
}

func TestCheckSigSucceedsOnValidSignature(t *testing.T) {
	priv, pub := testKeyPair(t)
	sigType := sighash.SigHashAll | sighash.SigHashForkID
	instructions := buildCheckSigProgram(t, priv, pub, sigType, false)

	final := evaluateBCH(instructions, baseContext(), 1)
	if final.Err() != nil {
		t.Fatalf("unexpected error: %v", final.Err())
	}
	if !final.Verified() {
		t.Fatalf("expected a valid signature to verify")
	}
}

func TestCheckSigFailsClosedOnTamperedSignature(t *testing.T) {
	priv, pub := testKeyPair(t)
	sigType := sighash.SigHashAll | sighash.SigHashForkID
	instructions := buildCheckSigProgram(t, priv, pub, sigType, true)

	final := evaluateBCH(instructions, baseContext(), 1)
	if final.Err() == nil {
		t.Fatalf("expected nullfail error for tampered, non-empty signature")
	}
	if final.Err().Kind != ErrNonNullSignatureFailure {
		t.Fatalf("err kind = %v, want ErrNonNullSignatureFailure", final.Err().Kind)
	}
}

func TestCheckSigRejectsInvalidPublicKeyEncoding(t *testing.T) {
	priv, _ := testKeyPair(t)
	badPub := []byte{0x01, 0x02, 0x03}
	sigType := sighash.SigHashAll | sighash.SigHashForkID
	instructions := buildCheckSigProgram(t, priv, badPub, sigType, false)

	final := evaluateBCH(instructions, baseContext(), 1)
	if final.Err() == nil || final.Err().Kind != ErrInvalidPublicKeyEncoding {
		t.Fatalf("expected ErrInvalidPublicKeyEncoding, got %v", final.Err())
	}
}

func TestCheckSigEmptySignatureFailsOpenWithoutError(t *testing.T) {
	_, pub := testKeyPair(t)
	instructions := []vm.Instruction{
		{Opcode: script.OP_0},
		{Opcode: script.OP_PUSHDATA1, Data: pub},
		{Opcode: script.OP_CHECKSIG},
	}
	final := evaluateBCH(instructions, baseContext(), 1)
	if final.Err() != nil {
		t.Fatalf("unexpected error for empty signature: %v", final.Err())
	}
	if final.Verified() {
		t.Fatalf("empty signature should push false, not verify")
	}
}
