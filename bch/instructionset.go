package bch

import (
	"github.com/bchcore/bchvm/script"
	"github.com/bchcore/bchvm/sighash"
	"github.com/bchcore/bchvm/vm"
)

// InstructionSet is the BCH common-opcode dialect, implementing
// vm.InstructionSet[*State, *sighash.TransactionContext].
type InstructionSet struct {
	ops   map[byte]opFunc
	flags Flags
}

var _ vm.InstructionSet[*State, *sighash.TransactionContext] = (*InstructionSet)(nil)

// NewInstructionSet builds the BCH common-opcode table under the given
// flags.
func NewInstructionSet(flags Flags) *InstructionSet {
	ops := make(map[byte]opFunc, 128)
	registerPushOps(ops)
	registerFlowOps(ops)
	registerStackOps(ops)
	registerArithmeticOps(ops, flags)
	registerBitwiseOps(ops, flags)
	registerStringOps(ops)
	registerCryptoOps(ops, flags)
	registerLocktimeOps(ops)

	log.Debugf("instruction set initialized with %d opcodes", len(ops))
	return &InstructionSet{ops: ops, flags: flags}
}

// Continue implements vm.InstructionSet. In addition to the generic
// stopping predicate, it detects an unterminated conditional at
// end-of-program and fails the state accordingly.
func (is *InstructionSet) Continue(s *State) bool {
	if s.err != nil {
		return false
	}
	if s.ip >= len(s.instructions) {
		if len(s.executionStack) != 0 {
			s.fail(ErrUnbalancedConditional, "unterminated IF/NOTIF at end of script")
		}
		return false
	}
	return true
}

// Initialize implements vm.InstructionSet.
func (is *InstructionSet) Initialize(p vm.Program[*sighash.TransactionContext]) *State {
	floor := 0
	if p.Context != nil {
		floor = p.Context.CoveredScriptStart
	}
	return &State{
		instructions:      p.Instructions,
		ip:                0,
		lastCodeSeparator: floor - 1,
		coveredScriptFloor: floor,
		ctx:               p.Context,
		flags:             is.flags,
	}
}

// Operation implements vm.InstructionSet.
func (is *InstructionSet) Operation(opcode byte) (vm.OpFunc[*State], bool) {
	fn, ok := is.ops[opcode]
	if !ok {
		return nil, false
	}
	return vm.OpFunc[*State](fn), true
}

// Undefined implements vm.InstructionSet.
func (is *InstructionSet) Undefined(s *State) *State {
	opcode := s.instructions[s.ip-1].Opcode
	if opcode > script.OP_CHECKDATASIGVERIFY {
		return s.fail(ErrExceededMaximumOpcode, "opcode beyond the maximum defined range")
	}
	return s.fail(ErrUnknownOpcode, "no handler registered for this opcode")
}

// Verify implements vm.InstructionSet.
func (is *InstructionSet) Verify(s *State) bool {
	return s.Verified()
}
