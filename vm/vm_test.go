package vm

import "testing"

// counterState is a minimal concrete state used to exercise the
// generic stepper independently of any Bitcoin-shaped dialect.
type counterState struct {
	instructions []Instruction
	ip           int
	stack        []int
}

func (s *counterState) Clone() *counterState {
	clone := &counterState{instructions: s.instructions, ip: s.ip}
	clone.stack = append([]int{}, s.stack...)
	return clone
}

func (s *counterState) InstructionPointer() int          { return s.ip }
func (s *counterState) SetInstructionPointer(ip int)      { s.ip = ip }
func (s *counterState) Instructions() []Instruction        { return s.instructions }

type counterInstructionSet struct{}

const (
	opZero = 0
	opInc  = 1
	opDec  = 2
	opAdd  = 3
)

func (counterInstructionSet) Continue(s *counterState) bool {
	return s.ip < len(s.instructions)
}

func (counterInstructionSet) Initialize(p Program[struct{}]) *counterState {
	return &counterState{instructions: p.Instructions}
}

func (counterInstructionSet) Operation(opcode byte) (OpFunc[*counterState], bool) {
	switch opcode {
	case opZero:
		return func(s *counterState) *counterState {
			s.stack = append(s.stack, 0)
			return s
		}, true
	case opInc:
		return func(s *counterState) *counterState {
			s.stack[len(s.stack)-1]++
			return s
		}, true
	case opDec:
		return func(s *counterState) *counterState {
			s.stack[len(s.stack)-1]--
			return s
		}, true
	case opAdd:
		return func(s *counterState) *counterState {
			n := len(s.stack)
			a, b := s.stack[n-2], s.stack[n-1]
			s.stack = append(s.stack[:n-2], a+b)
			return s
		}, true
	}
	return nil, false
}

func (counterInstructionSet) Undefined(s *counterState) *counterState { return s }

func (counterInstructionSet) Verify(s *counterState) bool {
	return len(s.stack) == 1 && s.stack[0] != 0
}

func program() Program[struct{}] {
	return Program[struct{}]{
		Instructions: []Instruction{
			{Opcode: opZero}, {Opcode: opInc}, {Opcode: opInc},
			{Opcode: opZero}, {Opcode: opDec}, {Opcode: opAdd},
		},
	}
}

func TestEvaluateSimpleCounterVM(t *testing.T) {
	is := counterInstructionSet{}
	final := Evaluate[*counterState, struct{}](is, program())
	if final.InstructionPointer() != 6 {
		t.Fatalf("ip = %d, want 6", final.InstructionPointer())
	}
	if len(final.stack) != 1 || final.stack[0] != 1 {
		t.Fatalf("stack = %v, want [1]", final.stack)
	}
}

func TestDebugSimpleCounterVMHasSevenStates(t *testing.T) {
	is := counterInstructionSet{}
	trace := Debug[*counterState, struct{}](is, program())
	if len(trace) != 7 {
		t.Fatalf("len(trace) = %d, want 7", len(trace))
	}
	last, secondLast := trace[6], trace[5]
	if last.InstructionPointer() != 6 || secondLast.InstructionPointer() != 6 {
		t.Fatalf("expected final two states both at ip=6, got %d and %d",
			secondLast.InstructionPointer(), last.InstructionPointer())
	}
	if len(last.stack) != 1 || last.stack[0] != 1 {
		t.Fatalf("final stack = %v, want [1]", last.stack)
	}
}

func TestStateStepDoesNotMutateOriginal(t *testing.T) {
	is := counterInstructionSet{}
	s := is.Initialize(program())
	s.stack = []int{5}
	s.ip = 1

	before := s.Clone()
	next := StateStep[*counterState, struct{}](is, s)

	if s.ip != before.ip || s.stack[0] != before.stack[0] {
		t.Fatalf("StateStep mutated its argument")
	}
	if next.ip == s.ip && next.stack[0] == s.stack[0] {
		t.Fatalf("StateStep did not advance the returned state")
	}
}

func TestStateStepIdempotentAtTermination(t *testing.T) {
	is := counterInstructionSet{}
	s := is.Initialize(program())
	s.ip = len(s.instructions)

	next := StateStep[*counterState, struct{}](is, s)
	if next.ip != s.ip || len(next.stack) != len(s.stack) {
		t.Fatalf("StateStep on a terminated state should be identity")
	}
}
