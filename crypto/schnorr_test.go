package crypto

import "testing"

func TestSchnorrSignVerifyRoundTrip(t *testing.T) {
	k := testPrivateKey()
	pub, err := DerivePublicKeyCompressed(k)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h32 := Sha256([]byte("schnorr authenticated message"))

	sig, err := SignMessageHashSchnorr(k, h32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sig) != SchnorrSignatureLength {
		t.Fatalf("len(sig) = %d, want %d", len(sig), SchnorrSignatureLength)
	}
	if !VerifySignatureSchnorr(sig, pub, h32) {
		t.Fatalf("freshly produced schnorr signature failed to verify")
	}
}

func TestSchnorrVerifyRejectsTamperedMessage(t *testing.T) {
	k := testPrivateKey()
	pub, err := DerivePublicKeyCompressed(k)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h32 := Sha256([]byte("original message"))
	sig, err := SignMessageHashSchnorr(k, h32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tampered := Sha256([]byte("tampered message"))
	if VerifySignatureSchnorr(sig, pub, tampered) {
		t.Fatalf("signature verified over a different message")
	}
}

func TestSchnorrVerifyRejectsWrongLength(t *testing.T) {
	if VerifySignatureSchnorr(make([]byte, 63), make([]byte, 33), make([]byte, 32)) {
		t.Fatalf("expected wrong-length signature to be rejected")
	}
}
