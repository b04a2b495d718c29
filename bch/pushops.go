package bch

import "github.com/bchcore/bchvm/script"

// opFunc is the concrete handler signature for this dialect: state in,
// state out, mutated in place. vm.OpFunc[*State] has the identical
// underlying type, so values of this type convert to it explicitly
// (see InstructionSet.Operation).
type opFunc func(*State) *State

// opPush pushes the current instruction's payload (nil for OP_0) onto
// the data stack. By the time a handler runs, ip has already advanced
// past the instruction being executed.
func opPush(s *State) *State {
	data := s.instructions[s.ip-1].Data
	pushToStack(s, data)
	return s
}

func opPushSmallInt(n int64) opFunc {
	return func(s *State) *State {
		pushScriptNumber(s, n)
		return s
	}
}

func registerPushOps(ops map[byte]opFunc) {
	for op := byte(0x01); op <= 0x4b; op++ {
		ops[op] = skippable(opPush)
	}
	ops[script.OP_0] = skippable(opPush)
	ops[script.OP_PUSHDATA1] = skippable(opPush)
	ops[script.OP_PUSHDATA2] = skippable(opPush)
	ops[script.OP_PUSHDATA4] = skippable(opPush)
	ops[script.OP_1NEGATE] = skippable(opPushSmallInt(-1))
	for op := byte(script.OP_1); op <= script.OP_16; op++ {
		n := int64(op) - int64(script.OP_1) + 1
		ops[op] = skippable(opPushSmallInt(n))
	}
	// OP_INVALIDOPCODE marks an already-malformed push from the parser;
	// it must fail even inside an inactive branch, since the script is
	// malformed independent of which way execution would have gone.
	ops[script.OP_INVALIDOPCODE] = func(s *State) *State {
		return s.fail(ErrMalformedPush, "truncated push instruction")
	}
}
