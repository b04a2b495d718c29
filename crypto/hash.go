// Package crypto wraps the consensus-critical cryptographic primitives
// the VM's crypto opcodes call: hashing, ECDSA, and BCH-variant Schnorr
// signatures over secp256k1.
package crypto

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/ripemd160"
)

// Sha1 returns the SHA-1 digest of data.
func Sha1(data []byte) []byte {
	sum := sha1.Sum(data)
	return sum[:]
}

// Sha256 returns the SHA-256 digest of data.
func Sha256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// Sha512 returns the SHA-512 digest of data.
func Sha512(data []byte) []byte {
	sum := sha512.Sum512(data)
	return sum[:]
}

// Ripemd160 returns the RIPEMD-160 digest of data.
func Ripemd160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}

// Hash256 returns sha256(sha256(data)), the double-SHA-256 digest used
// throughout the transaction format and the sighash algorithm.
func Hash256(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// Hash160 returns ripemd160(sha256(data)), used to derive P2PKH/P2SH
// hashes.
func Hash160(data []byte) []byte {
	sum := sha256.Sum256(data)
	return Ripemd160(sum[:])
}
