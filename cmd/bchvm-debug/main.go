package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bchcore/bchvm/bch"
	"github.com/bchcore/bchvm/script"
	"github.com/bchcore/bchvm/sighash"
	"github.com/bchcore/bchvm/vm"
)

// jsonOutpoint mirrors sighash.Outpoint in a JSON-friendly shape.
type jsonOutpoint struct {
	Hash  string `json:"hash"`
	Index uint32 `json:"index"`
}

type jsonContext struct {
	Version                 uint32         `json:"version"`
	Outpoints                []jsonOutpoint `json:"outpoints"`
	SequenceNumbers          []uint32       `json:"sequenceNumbers"`
	InputIndex               int            `json:"inputIndex"`
	OutpointTransactionHash  string         `json:"outpointTransactionHash"`
	OutpointIndex            uint32         `json:"outpointIndex"`
	OutputValue              uint64         `json:"outputValue"`
	SequenceNumber           uint32         `json:"sequenceNumber"`
	CorrespondingOutput      string         `json:"correspondingOutput,omitempty"`
	Outputs                  []string       `json:"outputs"`
	Locktime                 uint32         `json:"locktime"`
}

func (j *jsonContext) toTransactionContext() (*sighash.TransactionContext, error) {
	ctx := &sighash.TransactionContext{
		Version:        j.Version,
		InputIndex:     j.InputIndex,
		OutpointIndex:  j.OutpointIndex,
		OutputValue:    j.OutputValue,
		SequenceNumber: j.SequenceNumber,
		Locktime:       j.Locktime,
	}

	hashBytes, err := hex.DecodeString(j.OutpointTransactionHash)
	if err != nil || len(hashBytes) != 32 {
		return nil, fmt.Errorf("invalid outpointTransactionHash")
	}
	copy(ctx.OutpointTransactionHash[:], hashBytes)

	ctx.Outpoints = make([]sighash.Outpoint, len(j.Outpoints))
	for i, o := range j.Outpoints {
		b, err := hex.DecodeString(o.Hash)
		if err != nil || len(b) != 32 {
			return nil, fmt.Errorf("invalid outpoint hash at index %d", i)
		}
		copy(ctx.Outpoints[i].Hash[:], b)
		ctx.Outpoints[i].Index = o.Index
	}
	ctx.SequenceNumbers = j.SequenceNumbers

	if j.CorrespondingOutput != "" {
		out, err := hex.DecodeString(j.CorrespondingOutput)
		if err != nil {
			return nil, fmt.Errorf("invalid correspondingOutput")
		}
		ctx.CorrespondingOutput = out
	}

	ctx.Outputs = make([][]byte, len(j.Outputs))
	for i, o := range j.Outputs {
		b, err := hex.DecodeString(o)
		if err != nil {
			return nil, fmt.Errorf("invalid output at index %d", i)
		}
		ctx.Outputs[i] = b
	}

	return ctx, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		if err := initLogRotator(cfg.LogFile); err != nil {
			return err
		}
	}
	if cfg.Debug {
		setLogLevels("trace")
	} else {
		setLogLevels(cfg.DebugLevel)
	}

	lockingRaw, err := hex.DecodeString(cfg.LockingScript)
	if err != nil {
		return fmt.Errorf("invalid locking script: %w", err)
	}
	unlockingRaw, err := hex.DecodeString(cfg.UnlockingScript)
	if err != nil {
		return fmt.Errorf("invalid unlocking script: %w", err)
	}

	unlockingInstructions, malformed := script.Parse(unlockingRaw)
	if malformed {
		return fmt.Errorf("unlocking script ends in a malformed push")
	}
	lockingInstructions, malformed := script.Parse(lockingRaw)
	if malformed {
		return fmt.Errorf("locking script ends in a malformed push")
	}

	instructions := append(append([]vm.Instruction{}, unlockingInstructions...), lockingInstructions...)

	contextFile, err := os.ReadFile(cfg.Context)
	if err != nil {
		return fmt.Errorf("reading context file: %w", err)
	}
	var jctx jsonContext
	if err := json.Unmarshal(contextFile, &jctx); err != nil {
		return fmt.Errorf("parsing context JSON: %w", err)
	}
	txContext, err := jctx.toTransactionContext()
	if err != nil {
		return fmt.Errorf("invalid transaction context: %w", err)
	}
	txContext.CoveredScriptStart = len(unlockingInstructions)

	is := bch.NewInstructionSet(bch.DefaultFlags())
	program := vm.Program[*sighash.TransactionContext]{
		Instructions: instructions,
		Context:      txContext,
	}

	trace := vm.Debug[*bch.State, *sighash.TransactionContext](is, program)
	for i, st := range trace {
		fmt.Printf("step %d: ip=%d stack=%v", i, st.InstructionPointer(), hexStack(st.Stack()))
		if err := st.Err(); err != nil {
			fmt.Printf(" error=%s", err)
		}
		fmt.Println()
	}

	final := trace[len(trace)-1]
	fmt.Printf("verify=%v\n", is.Verify(final))
	return nil
}

func hexStack(stack [][]byte) []string {
	out := make([]string, len(stack))
	for i, v := range stack {
		out[i] = hex.EncodeToString(v)
	}
	return out
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
