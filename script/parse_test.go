package script

import (
	"bytes"
	"testing"

	"github.com/bchcore/bchvm/vm"
)

func TestParseSerializeRoundTrip(t *testing.T) {
	raw := []byte{OP_DUP, OP_HASH160, 0x14}
	raw = append(raw, bytes.Repeat([]byte{0xAB}, 20)...)
	raw = append(raw, OP_EQUALVERIFY, OP_CHECKSIG)

	instructions, malformed := Parse(raw)
	if malformed {
		t.Fatalf("unexpected malformed push")
	}
	if len(instructions) != 5 {
		t.Fatalf("len(instructions) = %d, want 5", len(instructions))
	}

	out := Serialize(instructions)
	if !bytes.Equal(out, raw) {
		t.Fatalf("Serialize(Parse(raw)) = %x, want %x", out, raw)
	}
}

func TestParsePushData1RoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 200)
	raw := append([]byte{OP_PUSHDATA1, byte(len(data))}, data...)

	instructions, malformed := Parse(raw)
	if malformed {
		t.Fatalf("unexpected malformed push")
	}
	if len(instructions) != 1 || !bytes.Equal(instructions[0].Data, data) {
		t.Fatalf("PUSHDATA1 did not round trip")
	}
	if !bytes.Equal(Serialize(instructions), raw) {
		t.Fatalf("Serialize did not reproduce raw PUSHDATA1 script")
	}
}

func TestParseTruncatedPushIsMalformed(t *testing.T) {
	raw := []byte{0x05, 0x01, 0x02} // claims 5 bytes, only 2 present
	instructions, malformed := Parse(raw)
	if !malformed {
		t.Fatalf("expected malformed push to be detected")
	}
	last := instructions[len(instructions)-1]
	if last.Opcode != OP_INVALIDOPCODE {
		t.Fatalf("last instruction opcode = 0x%02x, want OP_INVALIDOPCODE", last.Opcode)
	}
	if !bytes.Equal(last.Data, raw) {
		t.Fatalf("trailing instruction data = %x, want the full undecodable remainder %x", last.Data, raw)
	}
}

func TestIsPushOnly(t *testing.T) {
	pushOnly, _ := Parse([]byte{OP_1, 0x01, 0xAB, OP_16})
	if !IsPushOnly(pushOnly) {
		t.Fatalf("expected push-only script to be recognized")
	}

	notPushOnly, _ := Parse([]byte{OP_1, OP_CHECKSIG})
	if IsPushOnly(notPushOnly) {
		t.Fatalf("expected script containing OP_CHECKSIG not to be push-only")
	}
}

func TestDisassembleRendersDataAsHex(t *testing.T) {
	instructions := []vm.Instruction{{Opcode: 0x02, Data: []byte{0xDE, 0xAD}}}
	if got, want := Disassemble(instructions), "dead"; got != want {
		t.Fatalf("Disassemble = %q, want %q", got, want)
	}
}
