// Package vm implements a generic, opcode-table-driven authentication
// virtual machine. It knows nothing about Bitcoin, scripts, or stacks:
// a concrete dialect supplies a state type and an instruction set, and
// this package drives stepping, evaluation, and tracing over them.
package vm

import "fmt"

// Instruction is a single decoded program step: an opcode plus an
// optional data payload (present only for push-data opcodes).
type Instruction struct {
	Opcode byte
	Data   []byte
}

// Program bundles the instruction sequence a VM run executes against a
// caller-supplied context C (e.g. a transaction context). Instructions
// and Context are never mutated by the VM.
type Program[C any] struct {
	Instructions []Instruction
	Context      C
}

// State is the minimum capability set the generic stepper needs from a
// concrete dialect's state type. S is self-referencing so Clone can
// return the concrete type rather than the interface.
type State[S any] interface {
	// Clone returns a deep copy; StateStep and StateEvaluate rely on it
	// to avoid mutating the caller's state.
	Clone() S

	// InstructionPointer returns the index of the next instruction to
	// execute.
	InstructionPointer() int

	// SetInstructionPointer repositions the instruction pointer; Step
	// uses it to advance past the instruction it is executing.
	SetInstructionPointer(ip int)

	// Instructions returns the program's instruction sequence.
	Instructions() []Instruction
}

// OpFunc is a single opcode's handler: state in, state out. Handlers
// that fail set an error on the returned state rather than panicking.
type OpFunc[S any] func(S) S

// InstructionSet is the pluggable capability a dialect supplies to
// drive the generic stepper.
type InstructionSet[S State[S], C any] interface {
	// Continue reports whether evaluation should proceed. False once a
	// terminal error is set or the instruction pointer has run off the
	// end of the program.
	Continue(s S) bool

	// Initialize builds a fresh state from a program.
	Initialize(p Program[C]) S

	// Operation looks up the handler for opcode, if any is registered.
	Operation(opcode byte) (OpFunc[S], bool)

	// Undefined handles an opcode with no registered handler.
	Undefined(s S) S

	// Verify is the terminal success predicate.
	Verify(s S) bool
}

// Step executes exactly one instruction on s and returns the resulting
// state (s itself, mutated in place). If Continue(s) is false, Step is
// the identity transition.
func Step[S State[S], C any](is InstructionSet[S, C], s S) S {
	if !is.Continue(s) {
		return s
	}
	instructions := s.Instructions()
	ip := s.InstructionPointer()
	opcode := instructions[ip].Opcode
	s.SetInstructionPointer(ip + 1)
	log.Tracef("%v", newLogClosure(func() string {
		return fmt.Sprintf("step ip=%d opcode=0x%02x", ip, opcode)
	}))
	if fn, ok := is.Operation(opcode); ok {
		return fn(s)
	}
	return is.Undefined(s)
}

// StateStepMutate applies one handler to s in place. It is the hot path
// for real validation, where cloning every step is wasted work.
func StateStepMutate[S State[S], C any](is InstructionSet[S, C], s S) S {
	return Step(is, s)
}

// StateStep applies one handler to a clone of s, leaving s untouched.
func StateStep[S State[S], C any](is InstructionSet[S, C], s S) S {
	return Step(is, s.Clone())
}

// StateEvaluate drives a clone of s to termination and returns the
// final state, without mutating s.
func StateEvaluate[S State[S], C any](is InstructionSet[S, C], s S) S {
	cur := s.Clone()
	for is.Continue(cur) {
		cur = StateStepMutate(is, cur)
	}
	return cur
}

// StateDebug drives a clone of s to termination, returning one entry
// per executed step plus a trailing identity step recording
// termination. It never mutates s.
func StateDebug[S State[S], C any](is InstructionSet[S, C], s S) []S {
	cur := s.Clone()
	var trace []S
	for {
		wasContinuing := is.Continue(cur)
		cur = StateStepMutate(is, cur)
		trace = append(trace, cur.Clone())
		if !wasContinuing {
			break
		}
	}
	return trace
}

// Evaluate initializes state from p and drives it to termination.
func Evaluate[S State[S], C any](is InstructionSet[S, C], p Program[C]) S {
	return StateEvaluate(is, is.Initialize(p))
}

// Debug initializes state from p and returns the full step trace.
func Debug[S State[S], C any](is InstructionSet[S, C], p Program[C]) []S {
	return StateDebug(is, is.Initialize(p))
}
