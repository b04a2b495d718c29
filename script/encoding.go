package script

import (
	"github.com/bchcore/bchvm/crypto"
	"github.com/bchcore/bchvm/sighash"
)

// IsValidPublicKeyEncoding reports whether pub is a well-formed
// secp256k1 public key encoding: 33 bytes prefixed 0x02/0x03, or 65
// bytes prefixed 0x04.
func IsValidPublicKeyEncoding(pub []byte) bool {
	switch {
	case len(pub) == 33 && (pub[0] == 0x02 || pub[0] == 0x03):
		return true
	case len(pub) == 65 && pub[0] == 0x04:
		return true
	default:
		return false
	}
}

// IsValidSignatureEncodingBCHTransaction reports whether sig is an
// acceptable signature encoding for a BCH transaction: empty, a strict
// DER ECDSA signature plus a valid sighash-type byte, or a 64-byte
// Schnorr signature plus a valid sighash-type byte.
func IsValidSignatureEncodingBCHTransaction(sig []byte) bool {
	if len(sig) == 0 {
		return true
	}
	if len(sig) < 1 {
		return false
	}
	body := sig[:len(sig)-1]
	sigType := sighash.SigHashType(sig[len(sig)-1])
	if !sigType.IsValid() {
		return false
	}
	if len(body) == crypto.SchnorrSignatureLength {
		return true
	}
	_, err := crypto.ParseStrictDER(body)
	return err == nil
}

// SplitSignature separates a BCH-encoded signature into its raw
// signature body and sighash-type byte. Callers must first validate
// with IsValidSignatureEncodingBCHTransaction.
func SplitSignature(sig []byte) (body []byte, sigType sighash.SigHashType) {
	if len(sig) == 0 {
		return nil, 0
	}
	return sig[:len(sig)-1], sighash.SigHashType(sig[len(sig)-1])
}
