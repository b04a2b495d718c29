package script

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/bchcore/bchvm/vm"
)

// Parse decodes raw script bytes into a sequence of instructions. It
// never returns an error for a syntactically truncated push; instead,
// per the BCH VM's error-as-data model, it emits a trailing instruction
// carrying opcode OP_INVALIDOPCODE and the raw undecodable remainder as
// Data, and reports the malformed-push condition via the bool result.
func Parse(raw []byte) ([]vm.Instruction, bool) {
	var out []vm.Instruction
	i := 0
	for i < len(raw) {
		op := raw[i]
		switch {
		case op >= 0x01 && op <= 0x4b:
			n := int(op)
			if i+1+n > len(raw) {
				out = append(out, vm.Instruction{Opcode: OP_INVALIDOPCODE, Data: raw[i:]})
				return out, true
			}
			out = append(out, vm.Instruction{Opcode: op, Data: raw[i+1 : i+1+n]})
			i += 1 + n

		case op == OP_PUSHDATA1:
			if i+2 > len(raw) {
				out = append(out, vm.Instruction{Opcode: OP_INVALIDOPCODE, Data: raw[i:]})
				return out, true
			}
			n := int(raw[i+1])
			if i+2+n > len(raw) {
				out = append(out, vm.Instruction{Opcode: OP_INVALIDOPCODE, Data: raw[i:]})
				return out, true
			}
			out = append(out, vm.Instruction{Opcode: op, Data: raw[i+2 : i+2+n]})
			i += 2 + n

		case op == OP_PUSHDATA2:
			if i+3 > len(raw) {
				out = append(out, vm.Instruction{Opcode: OP_INVALIDOPCODE, Data: raw[i:]})
				return out, true
			}
			n := int(binary.LittleEndian.Uint16(raw[i+1 : i+3]))
			if i+3+n > len(raw) {
				out = append(out, vm.Instruction{Opcode: OP_INVALIDOPCODE, Data: raw[i:]})
				return out, true
			}
			out = append(out, vm.Instruction{Opcode: op, Data: raw[i+3 : i+3+n]})
			i += 3 + n

		case op == OP_PUSHDATA4:
			if i+5 > len(raw) {
				out = append(out, vm.Instruction{Opcode: OP_INVALIDOPCODE, Data: raw[i:]})
				return out, true
			}
			n := int(binary.LittleEndian.Uint32(raw[i+1 : i+5]))
			if i+5+n > len(raw) || n < 0 {
				out = append(out, vm.Instruction{Opcode: OP_INVALIDOPCODE, Data: raw[i:]})
				return out, true
			}
			out = append(out, vm.Instruction{Opcode: op, Data: raw[i+5 : i+5+n]})
			i += 5 + n

		default:
			out = append(out, vm.Instruction{Opcode: op})
			i++
		}
	}
	return out, false
}

// Serialize is the inverse of Parse: for every well-formed instruction
// sequence (one that did not come from a malformed-push parse),
// Serialize(Parse(b)) == b.
func Serialize(instructions []vm.Instruction) []byte {
	var out []byte
	for _, inst := range instructions {
		switch {
		case inst.Opcode >= 0x01 && inst.Opcode <= 0x4b:
			out = append(out, inst.Opcode)
			out = append(out, inst.Data...)

		case inst.Opcode == OP_PUSHDATA1:
			out = append(out, inst.Opcode, byte(len(inst.Data)))
			out = append(out, inst.Data...)

		case inst.Opcode == OP_PUSHDATA2:
			var lenBytes [2]byte
			binary.LittleEndian.PutUint16(lenBytes[:], uint16(len(inst.Data)))
			out = append(out, inst.Opcode)
			out = append(out, lenBytes[:]...)
			out = append(out, inst.Data...)

		case inst.Opcode == OP_PUSHDATA4:
			var lenBytes [4]byte
			binary.LittleEndian.PutUint32(lenBytes[:], uint32(len(inst.Data)))
			out = append(out, inst.Opcode)
			out = append(out, lenBytes[:]...)
			out = append(out, inst.Data...)

		case inst.Opcode == OP_INVALIDOPCODE && len(inst.Data) > 0:
			out = append(out, inst.Data...)

		default:
			out = append(out, inst.Opcode)
		}
	}
	return out
}

// IsPushOnly reports whether every instruction's opcode is at most
// OP_16: the push-data opcodes, the small-int and OP_1NEGATE constants,
// and OP_RESERVED, which sits inside that range.
func IsPushOnly(instructions []vm.Instruction) bool {
	for _, inst := range instructions {
		switch {
		case inst.Opcode <= OP_16:
			// OP_0..OP_16 (including all push-data opcodes, which sit
			// below OP_1NEGATE) are push-only.
		default:
			return false
		}
	}
	return true
}

// Disassemble renders an instruction sequence as a space-separated
// human-readable string, data instructions rendered as hex.
func Disassemble(instructions []vm.Instruction) string {
	parts := make([]string, 0, len(instructions))
	for _, inst := range instructions {
		if inst.Opcode == OP_INVALIDOPCODE {
			parts = append(parts, fmt.Sprintf("[error %x]", inst.Data))
			continue
		}
		if len(inst.Data) > 0 && inst.Opcode != 0 {
			parts = append(parts, fmt.Sprintf("%x", inst.Data))
			continue
		}
		parts = append(parts, OpcodeName(inst.Opcode))
	}
	return strings.Join(parts, " ")
}
