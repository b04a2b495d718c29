package bch

import "github.com/bchcore/bchvm/script"

func opCat(s *State) *State {
	a, b := popTwo(s)
	if s.err != nil {
		return s
	}
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	pushToStack(s, out)
	return s
}

func opSplit(s *State) *State {
	n := popScriptNumber(s)
	if s.err != nil {
		return s
	}
	data := popOne(s)
	if s.err != nil {
		return s
	}
	if n < 0 || n > int64(len(data)) {
		return s.fail(ErrInvalidStackIndex, "SPLIT index out of range")
	}
	pushToStack(s, data[:n])
	if s.err != nil {
		return s
	}
	pushToStack(s, data[n:])
	return s
}

func opNum2Bin(s *State) *State {
	size := popScriptNumber(s)
	if s.err != nil {
		return s
	}
	if size < 0 || size > maximumScriptElementSize {
		return s.fail(ErrExceededMaximumElementSize, "NUM2BIN target size out of range")
	}
	numBytes := popOne(s)
	if s.err != nil {
		return s
	}
	v := script.Decode(numBytes)
	minimal := script.Encode(v)
	if int64(len(minimal)) > size {
		return s.fail(ErrInvalidNaturalNumber, "value does not fit in requested size")
	}

	negative := len(minimal) > 0 && minimal[len(minimal)-1]&0x80 != 0
	out := make([]byte, size)
	copy(out, minimal)
	if len(minimal) > 0 {
		out[len(minimal)-1] &^= 0x80
	}
	if negative {
		out[size-1] |= 0x80
	}
	pushToStack(s, out)
	return s
}

func opBin2Num(s *State) *State {
	data := popOne(s)
	if s.err != nil {
		return s
	}
	v := script.Decode(data)
	minimal := script.Encode(v)
	if len(minimal) > 4 {
		return s.fail(ErrInvalidNaturalNumber, "value exceeds arithmetic operand range")
	}
	pushToStack(s, minimal)
	return s
}

func opSize(s *State) *State {
	if len(s.stack) == 0 {
		return s.fail(ErrEmptyStack, "SIZE on empty stack")
	}
	top := s.stack[len(s.stack)-1]
	pushScriptNumber(s, int64(len(top)))
	return s
}

func registerStringOps(ops map[byte]opFunc) {
	ops[script.OP_CAT] = counted(skippable(opCat))
	ops[script.OP_SPLIT] = counted(skippable(opSplit))
	ops[script.OP_NUM2BIN] = counted(skippable(opNum2Bin))
	ops[script.OP_BIN2NUM] = counted(skippable(opBin2Num))
	ops[script.OP_SIZE] = counted(skippable(opSize))
}
