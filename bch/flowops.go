package bch

import "github.com/bchcore/bchvm/script"

func opIfVariant(invert bool) opFunc {
	return func(s *State) *State {
		if !s.executing() {
			// Nested inside an inactive branch: track the frame
			// without touching the data stack.
			s.executionStack = append(s.executionStack, false)
			return s
		}
		cond := popOne(s)
		if s.err != nil {
			return s
		}
		truthy := isTruthy(cond)
		if invert {
			truthy = !truthy
		}
		s.executionStack = append(s.executionStack, truthy)
		return s
	}
}

func opElse(s *State) *State {
	if len(s.executionStack) == 0 {
		return s.fail(ErrUnbalancedConditional, "ELSE without matching IF")
	}
	top := len(s.executionStack) - 1
	s.executionStack[top] = !s.executionStack[top]
	return s
}

func opEndif(s *State) *State {
	if len(s.executionStack) == 0 {
		return s.fail(ErrUnbalancedConditional, "ENDIF without matching IF")
	}
	s.executionStack = s.executionStack[:len(s.executionStack)-1]
	return s
}

func opVerify(s *State) *State {
	v := popOne(s)
	if s.err != nil {
		return s
	}
	if !isTruthy(v) {
		return s.fail(ErrFailedVerify, "VERIFY failed")
	}
	return s
}

func opReturn(s *State) *State {
	return s.fail(ErrCalledReturn, "RETURN executed")
}

func opNop(s *State) *State {
	return s
}

// skippable wraps a handler so it is a no-op whenever the current
// nested IF/NOTIF branch is inactive.
func skippable(fn opFunc) opFunc {
	return func(s *State) *State {
		if !s.executing() {
			return s
		}
		return fn(s)
	}
}

// counted wraps a non-push handler so it bumps the operation count
// before running, per the consensus 201-opcode cap. The bump happens
// even when the surrounding branch is inactive, matching the real
// engine's DoS-resistant accounting.
func counted(fn opFunc) opFunc {
	return func(s *State) *State {
		bumpOperationCount(s, 1)
		if s.err != nil {
			return s
		}
		return fn(s)
	}
}

func registerFlowOps(ops map[byte]opFunc) {
	ops[script.OP_IF] = counted(opIfVariant(false))
	ops[script.OP_NOTIF] = counted(opIfVariant(true))
	ops[script.OP_ELSE] = counted(opElse)
	ops[script.OP_ENDIF] = counted(opEndif)
	ops[script.OP_VERIFY] = counted(skippable(opVerify))
	ops[script.OP_RETURN] = counted(skippable(opReturn))
	ops[script.OP_NOP] = counted(skippable(opNop))
	for _, op := range []byte{
		script.OP_NOP4, script.OP_NOP5, script.OP_NOP6, script.OP_NOP7,
		script.OP_NOP8, script.OP_NOP9, script.OP_NOP10,
	} {
		ops[op] = counted(skippable(opNop))
	}
}
