package bch

import "github.com/bchcore/bchvm/script"

// popOne pops and returns the top stack element. On an empty stack it
// fails the state with emptyStack and returns a nil element; callers
// must check s.Err() afterward.
func popOne(s *State) []byte {
	if len(s.stack) == 0 {
		s.fail(ErrEmptyStack, "pop from empty stack")
		return nil
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top
}

// popTwo pops the top two elements, returning (second-from-top, top) —
// i.e. in the order most binary opcodes consume them (a, b from
// `a b OP`).
func popTwo(s *State) (a, b []byte) {
	b = popOne(s)
	if s.err != nil {
		return nil, nil
	}
	a = popOne(s)
	return a, b
}

// popScriptNumber pops an element and decodes it as a 4-byte-bounded
// script number, honoring the minimal-encoding flag.
func popScriptNumber(s *State) int64 {
	elem := popOne(s)
	if s.err != nil {
		return 0
	}
	v, err := script.DecodeStrict(elem, 4, s.flags.RequireMinimalEncoding)
	if err != nil {
		s.fail(ErrNonMinimallyEncodedScriptNumber, err.Error())
		return 0
	}
	return v
}

// popScriptNumberN is popScriptNumber generalized to an arbitrary
// byte-length bound, used by CHECKMULTISIG's key/signature counts.
func popScriptNumberN(s *State, maxLen int) int64 {
	elem := popOne(s)
	if s.err != nil {
		return 0
	}
	v, err := script.DecodeStrict(elem, maxLen, s.flags.RequireMinimalEncoding)
	if err != nil {
		s.fail(ErrInvalidNaturalNumber, err.Error())
		return 0
	}
	return v
}

// pushToStack pushes v onto the data stack, enforcing the per-element
// size cap and the combined stack-depth cap.
func pushToStack(s *State, v []byte) {
	if len(v) > maximumScriptElementSize {
		s.fail(ErrExceededMaximumElementSize, "pushed element exceeds maximum size")
		return
	}
	if len(s.stack)+len(s.altStack)+1 > maximumStackDepth {
		s.fail(ErrExceededMaximumStackDepth, "stack depth exceeded")
		return
	}
	s.stack = append(s.stack, v)
}

// pushBool pushes Bitcoin script's canonical boolean encoding: empty
// for false, {0x01} for true.
func pushBool(s *State, v bool) {
	if v {
		pushToStack(s, []byte{0x01})
		return
	}
	pushToStack(s, nil)
}

// pushScriptNumber pushes the script-number encoding of v.
func pushScriptNumber(s *State, v int64) {
	pushToStack(s, script.Encode(v))
}

// combineOperations sequentially composes two handlers, short
// circuiting if the first sets an error.
func combineOperations(f, g func(*State) *State) func(*State) *State {
	return func(s *State) *State {
		s = f(s)
		if s.err != nil {
			return s
		}
		return g(s)
	}
}

// bumpOperationCount increments the non-push opcode counter and fails
// the state if it exceeds the consensus cap.
func bumpOperationCount(s *State, by int) {
	s.operationCount += by
	if s.operationCount > maximumOperationCount {
		s.fail(ErrExceededMaximumOperationCount, "operation count exceeded")
	}
}
