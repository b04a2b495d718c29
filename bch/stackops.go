package bch

import "github.com/bchcore/bchvm/script"

func opToAltStack(s *State) *State {
	v := popOne(s)
	if s.err != nil {
		return s
	}
	s.altStack = append(s.altStack, v)
	return s
}

func opFromAltStack(s *State) *State {
	if len(s.altStack) == 0 {
		return s.fail(ErrInvalidStackIndex, "FROMALTSTACK on empty alt stack")
	}
	v := s.altStack[len(s.altStack)-1]
	s.altStack = s.altStack[:len(s.altStack)-1]
	pushToStack(s, v)
	return s
}

func op2Drop(s *State) *State {
	popOne(s)
	if s.err != nil {
		return s
	}
	popOne(s)
	return s
}

func op2Dup(s *State) *State {
	if len(s.stack) < 2 {
		return s.fail(ErrInvalidStackIndex, "2DUP requires 2 elements")
	}
	n := len(s.stack)
	a, b := s.stack[n-2], s.stack[n-1]
	pushToStack(s, a)
	if s.err != nil {
		return s
	}
	pushToStack(s, b)
	return s
}

func op3Dup(s *State) *State {
	if len(s.stack) < 3 {
		return s.fail(ErrInvalidStackIndex, "3DUP requires 3 elements")
	}
	n := len(s.stack)
	a, b, c := s.stack[n-3], s.stack[n-2], s.stack[n-1]
	for _, v := range [][]byte{a, b, c} {
		pushToStack(s, v)
		if s.err != nil {
			return s
		}
	}
	return s
}

func op2Over(s *State) *State {
	if len(s.stack) < 4 {
		return s.fail(ErrInvalidStackIndex, "2OVER requires 4 elements")
	}
	n := len(s.stack)
	a, b := s.stack[n-4], s.stack[n-3]
	pushToStack(s, a)
	if s.err != nil {
		return s
	}
	pushToStack(s, b)
	return s
}

func op2Rot(s *State) *State {
	if len(s.stack) < 6 {
		return s.fail(ErrInvalidStackIndex, "2ROT requires 6 elements")
	}
	n := len(s.stack)
	a, b := s.stack[n-6], s.stack[n-5]
	s.stack = append(s.stack[:n-6], s.stack[n-4:]...)
	pushToStack(s, a)
	if s.err != nil {
		return s
	}
	pushToStack(s, b)
	return s
}

func op2Swap(s *State) *State {
	if len(s.stack) < 4 {
		return s.fail(ErrInvalidStackIndex, "2SWAP requires 4 elements")
	}
	n := len(s.stack)
	s.stack[n-4], s.stack[n-2] = s.stack[n-2], s.stack[n-4]
	s.stack[n-3], s.stack[n-1] = s.stack[n-1], s.stack[n-3]
	return s
}

func opIfDup(s *State) *State {
	if len(s.stack) == 0 {
		return s.fail(ErrEmptyStack, "IFDUP on empty stack")
	}
	top := s.stack[len(s.stack)-1]
	if isTruthy(top) {
		pushToStack(s, top)
	}
	return s
}

func opDepth(s *State) *State {
	pushScriptNumber(s, int64(len(s.stack)))
	return s
}

func opDrop(s *State) *State {
	popOne(s)
	return s
}

func opDup(s *State) *State {
	if len(s.stack) == 0 {
		return s.fail(ErrEmptyStack, "DUP on empty stack")
	}
	pushToStack(s, s.stack[len(s.stack)-1])
	return s
}

func opNip(s *State) *State {
	if len(s.stack) < 2 {
		return s.fail(ErrInvalidStackIndex, "NIP requires 2 elements")
	}
	n := len(s.stack)
	s.stack = append(s.stack[:n-2], s.stack[n-1])
	return s
}

func opOver(s *State) *State {
	if len(s.stack) < 2 {
		return s.fail(ErrInvalidStackIndex, "OVER requires 2 elements")
	}
	pushToStack(s, s.stack[len(s.stack)-2])
	return s
}

func stackIndexFromTop(s *State) (int, bool) {
	n := popScriptNumber(s)
	if s.err != nil {
		return 0, false
	}
	if n < 0 || n >= int64(len(s.stack)) {
		s.fail(ErrInvalidStackIndex, "stack index out of range")
		return 0, false
	}
	return len(s.stack) - 1 - int(n), true
}

func opPick(s *State) *State {
	idx, ok := stackIndexFromTop(s)
	if !ok {
		return s
	}
	pushToStack(s, s.stack[idx])
	return s
}

func opRoll(s *State) *State {
	idx, ok := stackIndexFromTop(s)
	if !ok {
		return s
	}
	v := s.stack[idx]
	s.stack = append(s.stack[:idx], s.stack[idx+1:]...)
	pushToStack(s, v)
	return s
}

func opRot(s *State) *State {
	if len(s.stack) < 3 {
		return s.fail(ErrInvalidStackIndex, "ROT requires 3 elements")
	}
	n := len(s.stack)
	s.stack[n-3], s.stack[n-2], s.stack[n-1] = s.stack[n-2], s.stack[n-1], s.stack[n-3]
	return s
}

func opSwap(s *State) *State {
	if len(s.stack) < 2 {
		return s.fail(ErrInvalidStackIndex, "SWAP requires 2 elements")
	}
	n := len(s.stack)
	s.stack[n-2], s.stack[n-1] = s.stack[n-1], s.stack[n-2]
	return s
}

func opTuck(s *State) *State {
	if len(s.stack) < 2 {
		return s.fail(ErrInvalidStackIndex, "TUCK requires 2 elements")
	}
	n := len(s.stack)
	x1, x2 := s.stack[n-2], s.stack[n-1]
	s.stack = append(s.stack[:n-2:n-2], x2, x1, x2)
	return s
}

func registerStackOps(ops map[byte]opFunc) {
	table := map[byte]opFunc{
		script.OP_TOALTSTACK:   opToAltStack,
		script.OP_FROMALTSTACK: opFromAltStack,
		script.OP_2DROP:        op2Drop,
		script.OP_2DUP:         op2Dup,
		script.OP_3DUP:         op3Dup,
		script.OP_2OVER:        op2Over,
		script.OP_2ROT:         op2Rot,
		script.OP_2SWAP:        op2Swap,
		script.OP_IFDUP:        opIfDup,
		script.OP_DEPTH:        opDepth,
		script.OP_DROP:         opDrop,
		script.OP_DUP:          opDup,
		script.OP_NIP:          opNip,
		script.OP_OVER:         opOver,
		script.OP_PICK:         opPick,
		script.OP_ROLL:         opRoll,
		script.OP_ROT:          opRot,
		script.OP_SWAP:         opSwap,
		script.OP_TUCK:         opTuck,
	}
	for op, fn := range table {
		ops[op] = counted(skippable(fn))
	}
}
