package bch

import "github.com/bchcore/bchvm/script"

func unaryNumeric(f func(int64) int64) opFunc {
	return func(s *State) *State {
		v := popScriptNumber(s)
		if s.err != nil {
			return s
		}
		pushScriptNumber(s, f(v))
		return s
	}
}

func binaryNumeric(f func(a, b int64) int64) opFunc {
	return func(s *State) *State {
		b := popScriptNumber(s)
		if s.err != nil {
			return s
		}
		a := popScriptNumber(s)
		if s.err != nil {
			return s
		}
		pushScriptNumber(s, f(a, b))
		return s
	}
}

func binaryBool(f func(a, b int64) bool) opFunc {
	return func(s *State) *State {
		b := popScriptNumber(s)
		if s.err != nil {
			return s
		}
		a := popScriptNumber(s)
		if s.err != nil {
			return s
		}
		pushBool(s, f(a, b))
		return s
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func opDisabled(s *State) *State {
	return s.fail(ErrDisabledOpcode, "opcode disabled")
}

func opDiv(s *State) *State {
	b := popScriptNumber(s)
	if s.err != nil {
		return s
	}
	a := popScriptNumber(s)
	if s.err != nil {
		return s
	}
	if b == 0 {
		return s.fail(ErrInvalidNaturalNumber, "division by zero")
	}
	pushScriptNumber(s, a/b)
	return s
}

func opMod(s *State) *State {
	b := popScriptNumber(s)
	if s.err != nil {
		return s
	}
	a := popScriptNumber(s)
	if s.err != nil {
		return s
	}
	if b == 0 {
		return s.fail(ErrInvalidNaturalNumber, "modulo by zero")
	}
	pushScriptNumber(s, a%b)
	return s
}

func opWithin(s *State) *State {
	max := popScriptNumber(s)
	if s.err != nil {
		return s
	}
	min := popScriptNumber(s)
	if s.err != nil {
		return s
	}
	x := popScriptNumber(s)
	if s.err != nil {
		return s
	}
	pushBool(s, x >= min && x < max)
	return s
}

func registerArithmeticOps(ops map[byte]opFunc, flags Flags) {
	ops[script.OP_1ADD] = counted(skippable(unaryNumeric(func(v int64) int64 { return v + 1 })))
	ops[script.OP_1SUB] = counted(skippable(unaryNumeric(func(v int64) int64 { return v - 1 })))
	ops[script.OP_NEGATE] = counted(skippable(unaryNumeric(func(v int64) int64 { return -v })))
	ops[script.OP_ABS] = counted(skippable(unaryNumeric(func(v int64) int64 {
		if v < 0 {
			return -v
		}
		return v
	})))
	ops[script.OP_NOT] = counted(skippable(unaryNumeric(func(v int64) int64 { return boolToInt(v == 0) })))
	ops[script.OP_0NOTEQUAL] = counted(skippable(unaryNumeric(func(v int64) int64 { return boolToInt(v != 0) })))

	ops[script.OP_ADD] = counted(skippable(binaryNumeric(func(a, b int64) int64 { return a + b })))
	ops[script.OP_SUB] = counted(skippable(binaryNumeric(func(a, b int64) int64 { return a - b })))

	if flags.DisableMul {
		ops[script.OP_MUL] = counted(skippable(opDisabled))
	} else {
		ops[script.OP_MUL] = counted(skippable(binaryNumeric(func(a, b int64) int64 { return a * b })))
	}
	ops[script.OP_DIV] = counted(skippable(opDiv))
	ops[script.OP_MOD] = counted(skippable(opMod))

	// OP_2MUL and OP_2DIV were permanently disabled by the original
	// Bitcoin arithmetic opcode retirement and never reintroduced.
	ops[script.OP_2MUL] = counted(skippable(opDisabled))
	ops[script.OP_2DIV] = counted(skippable(opDisabled))

	ops[script.OP_BOOLAND] = counted(skippable(binaryBool(func(a, b int64) bool { return a != 0 && b != 0 })))
	ops[script.OP_BOOLOR] = counted(skippable(binaryBool(func(a, b int64) bool { return a != 0 || b != 0 })))
	ops[script.OP_NUMEQUAL] = counted(skippable(binaryBool(func(a, b int64) bool { return a == b })))
	ops[script.OP_NUMEQUALVERIFY] = counted(skippable(combineOperations(
		binaryBool(func(a, b int64) bool { return a == b }), opVerify)))
	ops[script.OP_NUMNOTEQUAL] = counted(skippable(binaryBool(func(a, b int64) bool { return a != b })))
	ops[script.OP_LESSTHAN] = counted(skippable(binaryBool(func(a, b int64) bool { return a < b })))
	ops[script.OP_GREATERTHAN] = counted(skippable(binaryBool(func(a, b int64) bool { return a > b })))
	ops[script.OP_LESSTHANOREQUAL] = counted(skippable(binaryBool(func(a, b int64) bool { return a <= b })))
	ops[script.OP_GREATERTHANOREQUAL] = counted(skippable(binaryBool(func(a, b int64) bool { return a >= b })))
	ops[script.OP_MIN] = counted(skippable(binaryNumeric(func(a, b int64) int64 {
		if a < b {
			return a
		}
		return b
	})))
	ops[script.OP_MAX] = counted(skippable(binaryNumeric(func(a, b int64) int64 {
		if a > b {
			return a
		}
		return b
	})))
	ops[script.OP_WITHIN] = counted(skippable(opWithin))
}
