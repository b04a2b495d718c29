package bch

import "github.com/bchcore/bchvm/script"

// bitwiseBinary applies f element-wise over two byte strings that must
// be the same length (the BCH bitwise opcodes operate on equal-length
// operands only).
func bitwiseBinary(f func(a, b byte) byte) opFunc {
	return func(s *State) *State {
		a, b := popTwo(s)
		if s.err != nil {
			return s
		}
		if len(a) != len(b) {
			return s.fail(ErrInvalidNaturalNumber, "bitwise operands must be equal length")
		}
		out := make([]byte, len(a))
		for i := range a {
			out[i] = f(a[i], b[i])
		}
		pushToStack(s, out)
		return s
	}
}

func opEqual(s *State) *State {
	a, b := popTwo(s)
	if s.err != nil {
		return s
	}
	pushBool(s, bytesEqual(a, b))
	return s
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func shiftBits(data []byte, n int, left bool) []byte {
	total := len(data) * 8
	if n < 0 {
		n = 0
	}
	if n >= total {
		return make([]byte, len(data))
	}
	out := make([]byte, len(data))
	for bit := 0; bit < total; bit++ {
		var srcBit int
		if left {
			srcBit = bit + n
		} else {
			srcBit = bit - n
		}
		if srcBit < 0 || srcBit >= total {
			continue
		}
		if getBit(data, srcBit) {
			setBit(out, bit)
		}
	}
	return out
}

// getBit/setBit index bits most-significant-bit-first within the
// leading byte, matching the BCH bitwise-shift opcode semantics.
func getBit(data []byte, i int) bool {
	byteIdx := i / 8
	bitIdx := 7 - uint(i%8)
	return data[byteIdx]&(1<<bitIdx) != 0
}

func setBit(data []byte, i int) {
	byteIdx := i / 8
	bitIdx := 7 - uint(i%8)
	data[byteIdx] |= 1 << bitIdx
}

func opShift(left bool) opFunc {
	return func(s *State) *State {
		n := popScriptNumber(s)
		if s.err != nil {
			return s
		}
		data := popOne(s)
		if s.err != nil {
			return s
		}
		if n < 0 {
			return s.fail(ErrInvalidNaturalNumber, "negative shift count")
		}
		pushToStack(s, shiftBits(data, int(n), left))
		return s
	}
}

func registerBitwiseOps(ops map[byte]opFunc, flags Flags) {
	if flags.DisableInvert {
		ops[script.OP_INVERT] = counted(skippable(opDisabled))
	} else {
		ops[script.OP_INVERT] = counted(skippable(func(s *State) *State {
			v := popOne(s)
			if s.err != nil {
				return s
			}
			out := make([]byte, len(v))
			for i, b := range v {
				out[i] = ^b
			}
			pushToStack(s, out)
			return s
		}))
	}
	ops[script.OP_AND] = counted(skippable(bitwiseBinary(func(a, b byte) byte { return a & b })))
	ops[script.OP_OR] = counted(skippable(bitwiseBinary(func(a, b byte) byte { return a | b })))
	ops[script.OP_XOR] = counted(skippable(bitwiseBinary(func(a, b byte) byte { return a ^ b })))
	ops[script.OP_EQUAL] = counted(skippable(opEqual))
	ops[script.OP_EQUALVERIFY] = counted(skippable(combineOperations(opEqual, opVerify)))

	if flags.DisableBitwiseShifts {
		ops[script.OP_LSHIFT] = counted(skippable(opDisabled))
		ops[script.OP_RSHIFT] = counted(skippable(opDisabled))
	} else {
		ops[script.OP_LSHIFT] = counted(skippable(opShift(true)))
		ops[script.OP_RSHIFT] = counted(skippable(opShift(false)))
	}
}
