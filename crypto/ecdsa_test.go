package crypto

import (
	"math/big"
	"testing"
)

func TestSignMessageHashDERRoundTripsWithVerify(t *testing.T) {
	k := testPrivateKey()
	pub, err := DerivePublicKeyCompressed(k)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h32 := Sha256([]byte("authenticate this message"))

	sig, err := SignMessageHashDER(k, h32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !VerifySignatureDERLowS(sig, pub, h32) {
		t.Fatalf("freshly produced signature failed to verify")
	}
}

func TestSignMessageHashDERIsLowS(t *testing.T) {
	k := testPrivateKey()
	h32 := Sha256([]byte("low-s check"))

	sig, err := SignMessageHashDER(k, h32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsed, err := ParseStrictDER(sig)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if parsed.S.Cmp(halfOrder()) > 0 {
		t.Fatalf("signature S value is not low-S")
	}
}

func TestVerifySignatureDERLowSRejectsHighS(t *testing.T) {
	k := testPrivateKey()
	pub, err := DerivePublicKeyCompressed(k)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h32 := Sha256([]byte("flip me to high-s"))

	sig, err := SignMessageHashDER(k, h32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsed, err := ParseStrictDER(sig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := curve().Params().N
	highS := new(big.Int).Sub(n, parsed.S)
	flipped := (&DERSignature{R: parsed.R, S: highS}).Serialize()

	if VerifySignatureDERLowS(flipped, pub, h32) {
		t.Fatalf("high-S signature should have been rejected")
	}
}

func TestVerifySignatureDERLowSRejectsWrongKey(t *testing.T) {
	k := testPrivateKey()
	h32 := Sha256([]byte("signed with one key"))
	sig, err := SignMessageHashDER(k, h32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	otherKey := testPrivateKey()
	otherKey[0] ^= 0xff
	otherPub, err := DerivePublicKeyCompressed(otherKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if VerifySignatureDERLowS(sig, otherPub, h32) {
		t.Fatalf("signature verified against the wrong public key")
	}
}

func TestSignMessageHashCompactLength(t *testing.T) {
	k := testPrivateKey()
	h32 := Sha256([]byte("compact form"))
	compact, err := SignMessageHashCompact(k, h32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(compact) != 64 {
		t.Fatalf("len(compact) = %d, want 64", len(compact))
	}
}
