package crypto

import (
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

var (
	// ErrInvalidSignatureEncoding names a structurally invalid DER
	// signature. The sign helpers report DER parse failures with the
	// specific ParseStrictDER errors, NormalizeSignatureDER always
	// succeeds, and verify functions return false instead of an error.
	ErrInvalidSignatureEncoding = errors.New("invalid DER signature encoding")
)

// halfOrder is n/2, the low-S threshold.
func halfOrder() *big.Int {
	n := curve().Params().N
	return new(big.Int).Rsh(n, 1)
}

// SignMessageHashDER signs h32 (a 32-byte digest, conventionally a
// double-SHA-256) with private key k using RFC6979 deterministic
// nonces, and returns a strict-DER, low-S encoded signature.
func SignMessageHashDER(k, h32 []byte) ([]byte, error) {
	if !ValidatePrivateKey(k) {
		return nil, ErrInvalidPrivateKey
	}
	priv, _ := btcec.PrivKeyFromBytes(k)
	sig := btcecdsa.Sign(priv, h32)
	der := sig.Serialize()

	// btcec's ecdsa.Sign already returns a low-S canonical signature;
	// re-derive through our own strict parser so the byte form we hand
	// back is produced by code this package controls end to end.
	parsed, err := ParseStrictDER(der)
	if err != nil {
		return nil, err
	}
	return NormalizeSignatureDER(parsed)
}

// SignMessageHashCompact signs h32 and returns the raw 64-byte r||s
// low-S encoding (no DER framing, no recovery byte).
func SignMessageHashCompact(k, h32 []byte) ([]byte, error) {
	der, err := SignMessageHashDER(k, h32)
	if err != nil {
		return nil, err
	}
	parsed, err := ParseStrictDER(der)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 64)
	parsed.R.FillBytes(out[:32])
	parsed.S.FillBytes(out[32:])
	return out, nil
}

// NormalizeSignatureDER re-encodes sig with S forced into the low-S
// range (s <= n/2), per BIP62.
func NormalizeSignatureDER(sig *DERSignature) ([]byte, error) {
	n := curve().Params().N
	s := sig.S
	if s.Cmp(halfOrder()) > 0 {
		s = new(big.Int).Sub(n, s)
	}
	return (&DERSignature{R: sig.R, S: s}).Serialize(), nil
}

// VerifySignatureDERLowS reports whether sig is a valid, low-S,
// strict-DER ECDSA signature over h32 by the public key pub. It never
// returns an error: malformed input, high-S, and genuine verification
// failure are all reported as false.
func VerifySignatureDERLowS(sig, pub, h32 []byte) bool {
	parsed, err := ParseStrictDER(sig)
	if err != nil {
		return false
	}
	if parsed.S.Cmp(halfOrder()) > 0 {
		return false
	}
	return verifyECDSA(parsed.R, parsed.S, pub, h32)
}

// verifyECDSA delegates to btcecdsa's own signature verification, the
// same package SignMessageHashDER signs through. r and s have already
// passed strict-DER and low-S checks in VerifySignatureDERLowS; this
// only needs to reject out-of-range values before handing off.
func verifyECDSA(r, s *big.Int, pub, h32 []byte) bool {
	n := curve().Params().N
	if r.Sign() <= 0 || r.Cmp(n) >= 0 {
		return false
	}
	if s.Sign() <= 0 || s.Cmp(n) >= 0 {
		return false
	}

	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return false
	}

	var rScalar, sScalar btcec.ModNScalar
	rScalar.SetByteSlice(r.Bytes())
	sScalar.SetByteSlice(s.Bytes())

	return btcecdsa.NewSignature(&rScalar, &sScalar).Verify(h32, key)
}
