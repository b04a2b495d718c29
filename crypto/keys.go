package crypto

import (
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

// ErrInvalidPrivateKey is returned when a 32-byte candidate is not in
// the valid range [1, n).
var ErrInvalidPrivateKey = errors.New("private key out of range")

// curve is the secp256k1 curve, retained in its legacy elliptic.Curve
// compatible form so callers needing raw point arithmetic (Schnorr)
// can use it directly alongside the higher-level btcec key types.
func curve() *btcec.KoblitzCurve {
	return btcec.S256()
}

// ValidatePrivateKey reports whether k is a valid secp256k1 private
// key: exactly 32 bytes and in the range (0, n).
func ValidatePrivateKey(k []byte) bool {
	if len(k) != 32 {
		return false
	}
	v := new(big.Int).SetBytes(k)
	if v.Sign() <= 0 {
		return false
	}
	return v.Cmp(curve().Params().N) < 0
}

// DerivePublicKeyCompressed returns the 33-byte compressed public key
// for private key k.
func DerivePublicKeyCompressed(k []byte) ([]byte, error) {
	if !ValidatePrivateKey(k) {
		return nil, ErrInvalidPrivateKey
	}
	_, pub := btcec.PrivKeyFromBytes(k)
	return pub.SerializeCompressed(), nil
}

// DerivePublicKeyUncompressed returns the 65-byte uncompressed public
// key for private key k.
func DerivePublicKeyUncompressed(k []byte) ([]byte, error) {
	if !ValidatePrivateKey(k) {
		return nil, ErrInvalidPrivateKey
	}
	_, pub := btcec.PrivKeyFromBytes(k)
	return pub.SerializeUncompressed(), nil
}

// CompressPublicKey re-encodes a compressed or uncompressed public key
// in compressed form.
func CompressPublicKey(pub []byte) ([]byte, error) {
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, err
	}
	return key.SerializeCompressed(), nil
}

// DecompressPublicKey re-encodes a compressed or uncompressed public
// key in uncompressed form.
func DecompressPublicKey(pub []byte) ([]byte, error) {
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, err
	}
	return key.SerializeUncompressed(), nil
}

// AddTweakPrivateKey returns (k + t) mod n as a 32-byte value.
func AddTweakPrivateKey(k, t []byte) ([]byte, error) {
	if !ValidatePrivateKey(k) {
		return nil, ErrInvalidPrivateKey
	}
	n := curve().Params().N
	kv := new(big.Int).SetBytes(k)
	tv := new(big.Int).SetBytes(t)
	sum := new(big.Int).Add(kv, tv)
	sum.Mod(sum, n)
	if sum.Sign() == 0 {
		return nil, ErrInvalidPrivateKey
	}
	out := make([]byte, 32)
	sum.FillBytes(out)
	return out, nil
}

// AddTweakPublicKeyCompressed returns the compressed encoding of
// P + t*G.
func AddTweakPublicKeyCompressed(pub, t []byte) ([]byte, error) {
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, err
	}
	c := curve()
	ecPub := key.ToECDSA()
	tx, ty := c.ScalarBaseMult(t)
	x, y := c.Add(ecPub.X, ecPub.Y, tx, ty)
	return compressPoint(x, y), nil
}

// MultiplyTweakPublicKeyCompressed returns the compressed encoding of
// t*P.
func MultiplyTweakPublicKeyCompressed(pub, t []byte) ([]byte, error) {
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, err
	}
	c := curve()
	ecPub := key.ToECDSA()
	x, y := c.ScalarMult(ecPub.X, ecPub.Y, t)
	return compressPoint(x, y), nil
}

// compressPoint encodes an affine secp256k1 point in SEC1 compressed
// form.
func compressPoint(x, y *big.Int) []byte {
	out := make([]byte, 33)
	if y.Bit(0) == 0 {
		out[0] = 0x02
	} else {
		out[0] = 0x03
	}
	x.FillBytes(out[1:])
	return out
}
