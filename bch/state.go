// Package bch implements the BCH common-opcode dialect on top of the
// generic vm package: state, errors, stack combinators, and the opcode
// handler tables for flow control, stack manipulation, arithmetic,
// bitwise, string, crypto, and locktime operations.
package bch

import (
	"github.com/bchcore/bchvm/sighash"
	"github.com/bchcore/bchvm/vm"
)

const (
	maximumScriptElementSize    = 520
	maximumStackDepth           = 1000
	maximumOperationCount       = 201
	maximumPublicKeysPerMultisig = 20
)

// State is the BCH dialect's concrete VM state.
type State struct {
	instructions []vm.Instruction
	ip           int

	stack          [][]byte
	altStack       [][]byte
	executionStack []bool

	lastCodeSeparator int
	coveredScriptFloor int
	operationCount    int

	err *ScriptError

	ctx   *sighash.TransactionContext
	flags Flags
}

var _ vm.State[*State] = (*State)(nil)

// InstructionPointer implements vm.State.
func (s *State) InstructionPointer() int { return s.ip }

// SetInstructionPointer implements vm.State.
func (s *State) SetInstructionPointer(ip int) { s.ip = ip }

// Instructions implements vm.State.
func (s *State) Instructions() []vm.Instruction { return s.instructions }

// Clone returns a deep copy of s. Instruction and transaction-context
// references are shared (they are immutable program inputs); the
// stacks, execution stack, and error are copied.
func (s *State) Clone() *State {
	clone := &State{
		instructions:      s.instructions,
		ip:                s.ip,
		lastCodeSeparator: s.lastCodeSeparator,
		coveredScriptFloor: s.coveredScriptFloor,
		operationCount:    s.operationCount,
		ctx:               s.ctx,
		flags:             s.flags,
	}
	if s.stack != nil {
		clone.stack = make([][]byte, len(s.stack))
		copy(clone.stack, s.stack)
	}
	if s.altStack != nil {
		clone.altStack = make([][]byte, len(s.altStack))
		copy(clone.altStack, s.altStack)
	}
	if s.executionStack != nil {
		clone.executionStack = make([]bool, len(s.executionStack))
		copy(clone.executionStack, s.executionStack)
	}
	if s.err != nil {
		errCopy := *s.err
		clone.err = &errCopy
	}
	return clone
}

// Err returns the terminal error, if any.
func (s *State) Err() *ScriptError { return s.err }

// Stack returns the data stack, top last.
func (s *State) Stack() [][]byte { return s.stack }

// AltStack returns the alternate stack, top last.
func (s *State) AltStack() [][]byte { return s.altStack }

// Verified reports the final success predicate: no error, and the top
// stack element is truthy.
func (s *State) Verified() bool {
	if s.err != nil {
		return false
	}
	if len(s.stack) == 0 {
		return false
	}
	return isTruthy(s.stack[len(s.stack)-1])
}

// fail sets the terminal error, unless one is already set.
func (s *State) fail(kind ErrorKind, msg string) *State {
	if s.err == nil {
		s.err = newError(s.ip, kind, msg)
	}
	return s
}

// executing reports whether the current nested IF/NOTIF branch is
// live: all entries on the execution stack must be true.
func (s *State) executing() bool {
	for _, b := range s.executionStack {
		if !b {
			return false
		}
	}
	return true
}

// isTruthy implements Bitcoin script truthiness: any nonzero byte
// string is true, except a sequence of zero bytes possibly followed by
// a single 0x80 (negative zero) is still false.
func isTruthy(b []byte) bool {
	for i, v := range b {
		if v == 0 {
			continue
		}
		if i == len(b)-1 && v == 0x80 {
			return false
		}
		return true
	}
	return false
}
