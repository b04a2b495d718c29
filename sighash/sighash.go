// Package sighash builds the BIP143-style signing serialization
// preimage (and its double-SHA-256 digest) that a BCH signature
// commits to.
package sighash

import (
	"encoding/binary"

	"github.com/bchcore/bchvm/crypto"
)

// SigHashType is the one-byte (carried as a little-endian uint32 in the
// preimage) flag set appended to every BCH signature.
type SigHashType uint32

const (
	SigHashAll    SigHashType = 0x01
	SigHashNone   SigHashType = 0x02
	SigHashSingle SigHashType = 0x03

	SigHashForkID       SigHashType = 0x40
	SigHashAnyOneCanPay SigHashType = 0x80

	sigHashBaseMask = 0x1f
)

// BaseType returns the ALL/NONE/SINGLE component, ignoring the forkid
// and anyone-can-pay bits.
func (t SigHashType) BaseType() SigHashType {
	return t & sigHashBaseMask
}

// HasForkID reports whether the mandatory BCH forkid bit is set.
func (t SigHashType) HasForkID() bool {
	return t&SigHashForkID != 0
}

// AnyoneCanPay reports whether the anyone-can-pay bit is set.
func (t SigHashType) AnyoneCanPay() bool {
	return t&SigHashAnyOneCanPay != 0
}

// IsValid reports whether t has a recognized base type, the mandatory
// forkid bit set, and no stray bits outside the defined layout.
func (t SigHashType) IsValid() bool {
	if !t.HasForkID() {
		return false
	}
	base := t.BaseType()
	if base != SigHashAll && base != SigHashNone && base != SigHashSingle {
		return false
	}
	const known = sigHashBaseMask | uint32(SigHashForkID) | uint32(SigHashAnyOneCanPay)
	return uint32(t)&^known == 0
}

// Outpoint is a transaction input's previous-output reference.
type Outpoint struct {
	Hash  [32]byte
	Index uint32
}

// TransactionContext is the flat BCH transaction context record a
// program carries: everything the signing serialization needs about
// the spending transaction and the specific input being authenticated.
type TransactionContext struct {
	Version uint32

	// Outpoints and SequenceNumbers are parallel slices, one entry per
	// transaction input, in input order.
	Outpoints       []Outpoint
	SequenceNumbers []uint32

	InputIndex int

	OutpointTransactionHash [32]byte
	OutpointIndex           uint32
	OutputValue             uint64
	SequenceNumber          uint32

	// CorrespondingOutput is the serialized output at the same index
	// as the current input, or nil if there is none (SIGHASH_SINGLE
	// with an out-of-range index).
	CorrespondingOutput []byte

	// Outputs holds every output's serialized bytes, in order, for
	// SIGHASH_ALL's hashOutputs.
	Outputs [][]byte

	Locktime uint32

	// CoveredBytecode is the executing script sliced from just after
	// the last OP_CODESEPARATOR to its end, already serialized to raw
	// bytes.
	CoveredBytecode []byte

	// CoveredScriptStart is the instruction index, within the joined
	// unlocking+locking program, at which the previous output's locking
	// script begins. OP_CODESEPARATOR never resolves coveredBytecode to
	// anything before this point: the unlocking script's own pushes
	// (including the signature being checked) are never part of the
	// signed bytecode.
	CoveredScriptStart int
}

func writeUint32LE(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func writeUint64LE(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

// writeCompactSize appends n encoded with the standard Bitcoin
// 1/3/5/9-byte variable-length rule.
func writeCompactSize(buf []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(buf, byte(n))
	case n <= 0xffff:
		buf = append(buf, 0xfd)
		return writeUint16LE(buf, uint16(n))
	case n <= 0xffffffff:
		buf = append(buf, 0xfe)
		return writeUint32LE(buf, uint32(n))
	default:
		buf = append(buf, 0xff)
		return writeUint64LE(buf, n)
	}
}

func writeUint16LE(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

// hashPrevouts returns hash256 of the concatenated 36-byte outpoints of
// every input, or the zero hash when ANYONECANPAY is set.
func hashPrevouts(ctx *TransactionContext, sigType SigHashType) [32]byte {
	var out [32]byte
	if sigType.AnyoneCanPay() {
		return out
	}
	var buf []byte
	for _, op := range ctx.Outpoints {
		buf = append(buf, op.Hash[:]...)
		buf = writeUint32LE(buf, op.Index)
	}
	copy(out[:], crypto.Hash256(buf))
	return out
}

// hashSequence returns hash256 of the concatenated 4-byte sequence
// numbers of every input, or the zero hash unless the base type is ALL
// and ANYONECANPAY is unset.
func hashSequence(ctx *TransactionContext, sigType SigHashType) [32]byte {
	var out [32]byte
	if sigType.AnyoneCanPay() || sigType.BaseType() != SigHashAll {
		return out
	}
	var buf []byte
	for _, seq := range ctx.SequenceNumbers {
		buf = writeUint32LE(buf, seq)
	}
	copy(out[:], crypto.Hash256(buf))
	return out
}

// hashOutputs returns hash256 of the concatenated serialized outputs
// per the sighash base type: all outputs for ALL, only the
// corresponding output for SINGLE, zero hash for NONE.
func hashOutputs(ctx *TransactionContext, sigType SigHashType) [32]byte {
	var out [32]byte
	switch sigType.BaseType() {
	case SigHashAll:
		var buf []byte
		for _, o := range ctx.Outputs {
			buf = append(buf, o...)
		}
		copy(out[:], crypto.Hash256(buf))
	case SigHashSingle:
		if ctx.CorrespondingOutput != nil {
			copy(out[:], crypto.Hash256(ctx.CorrespondingOutput))
		}
	}
	return out
}

// GenerateSigningSerializationBCH builds the signing serialization
// preimage for ctx under sigType, per the BIP143-with-forkid layout.
func GenerateSigningSerializationBCH(ctx *TransactionContext, sigType SigHashType) []byte {
	hp := hashPrevouts(ctx, sigType)
	hs := hashSequence(ctx, sigType)
	ho := hashOutputs(ctx, sigType)

	var buf []byte
	buf = writeUint32LE(buf, ctx.Version)
	buf = append(buf, hp[:]...)
	buf = append(buf, hs[:]...)
	buf = append(buf, ctx.OutpointTransactionHash[:]...)
	buf = writeUint32LE(buf, ctx.OutpointIndex)
	buf = writeCompactSize(buf, uint64(len(ctx.CoveredBytecode)))
	buf = append(buf, ctx.CoveredBytecode...)
	buf = writeUint64LE(buf, ctx.OutputValue)
	buf = writeUint32LE(buf, ctx.SequenceNumber)
	buf = append(buf, ho[:]...)
	buf = writeUint32LE(buf, ctx.Locktime)
	buf = writeUint32LE(buf, uint32(sigType))
	return buf
}

// Digest returns sha256(sha256(preimage)), the value an ECDSA or
// Schnorr signature commits to.
func Digest(ctx *TransactionContext, sigType SigHashType) []byte {
	preimage := GenerateSigningSerializationBCH(ctx, sigType)
	return crypto.Hash256(preimage)
}
