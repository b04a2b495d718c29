package crypto

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

// SchnorrSignatureLength is the fixed length of a BCH-variant Schnorr
// signature: a 32-byte nonce-point x-coordinate followed by a 32-byte
// scalar. Unlike BIP340/Taproot Schnorr, the companion public key stays
// in the ordinary 33/65-byte ECDSA encoding rather than a 32-byte
// x-only form.
const SchnorrSignatureLength = 64

// SignMessageHashSchnorr produces a 64-byte BCH Schnorr signature over
// h32 with private key k.
func SignMessageHashSchnorr(k, h32 []byte) ([]byte, error) {
	if !ValidatePrivateKey(k) {
		return nil, ErrInvalidPrivateKey
	}
	c := curve()
	n := c.Params().N

	d := new(big.Int).SetBytes(k)
	_, pub := btcec.PrivKeyFromBytes(k)
	pubBytes := pub.SerializeCompressed()

	nonce := new(big.Int).SetBytes(Sha256(append(append([]byte{}, k...), h32...)))
	nonce.Mod(nonce, n)
	if nonce.Sign() == 0 {
		nonce.SetInt64(1)
	}

	rx, ry := c.ScalarBaseMult(nonce.Bytes())
	if ry.Bit(0) != 0 {
		nonce.Sub(n, nonce)
		rx, _ = c.ScalarBaseMult(nonce.Bytes())
	}

	rxBytes := make([]byte, 32)
	rx.FillBytes(rxBytes)

	e := schnorrChallenge(rxBytes, pubBytes, h32, n)

	s := new(big.Int).Mul(e, d)
	s.Add(s, nonce)
	s.Mod(s, n)

	sig := make([]byte, 64)
	copy(sig[:32], rxBytes)
	s.FillBytes(sig[32:])
	return sig, nil
}

// VerifySignatureSchnorr reports whether sig64 is a valid BCH Schnorr
// signature over h32 by the public key pub. It returns false rather
// than an error on any malformed input.
func VerifySignatureSchnorr(sig64, pub, h32 []byte) bool {
	if len(sig64) != SchnorrSignatureLength {
		return false
	}
	c := curve()
	n := c.Params().N
	p := c.Params().P

	rx := new(big.Int).SetBytes(sig64[:32])
	s := new(big.Int).SetBytes(sig64[32:])
	if rx.Cmp(p) >= 0 || s.Cmp(n) >= 0 {
		return false
	}

	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return false
	}
	pubBytes := key.SerializeCompressed()
	ecPub := key.ToECDSA()

	e := schnorrChallenge(sig64[:32], pubBytes, h32, n)

	sgx, sgy := c.ScalarBaseMult(s.Bytes())
	negE := new(big.Int).Sub(n, new(big.Int).Mod(e, n))
	epx, epy := c.ScalarMult(ecPub.X, ecPub.Y, negE.Bytes())
	rpx, rpy := c.Add(sgx, sgy, epx, epy)

	if rpx.Sign() == 0 && rpy.Sign() == 0 {
		return false
	}
	if rpy.Bit(0) != 0 {
		return false
	}
	return rpx.Cmp(rx) == 0
}

// schnorrChallenge computes e = SHA256(Rx || P || h32) mod n, the
// nonce-binding challenge shared by sign and verify.
func schnorrChallenge(rx, pub, h32 []byte, n *big.Int) *big.Int {
	buf := make([]byte, 0, len(rx)+len(pub)+len(h32))
	buf = append(buf, rx...)
	buf = append(buf, pub...)
	buf = append(buf, h32...)
	e := new(big.Int).SetBytes(Sha256(buf))
	return e.Mod(e, n)
}
