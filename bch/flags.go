package bch

// Flags bundles the network-era and consensus-rule toggles the
// specification leaves as open questions rather than hardcoded
// behavior, plus a few standard optional checks the BCH lineage has
// always carried alongside consensus execution.
type Flags struct {
	// RequireNullSignatureFailures rejects a CHECKSIG/CHECKMULTISIG
	// whose signature failed verification unless that signature was
	// the empty byte string (NULLFAIL). Unconditional on BCH since the
	// May 2018 upgrade.
	RequireNullSignatureFailures bool

	// RequireBugValueZero requires CHECKMULTISIG's historical extra
	// stack element (the "protocol bug value") to be empty.
	RequireBugValueZero bool

	// RequireMinimalEncoding rejects non-minimally encoded script
	// numbers wherever one is popped as an operand.
	RequireMinimalEncoding bool

	// DisableMul, DisableBitwiseShifts, and DisableInvert gate opcodes
	// whose availability has varied across BCH network upgrades.
	// OP_MUL, OP_LSHIFT, and OP_RSHIFT are enabled by default (current
	// era); OP_INVERT is disabled by default and has never been
	// reintroduced.
	DisableMul           bool
	DisableBitwiseShifts bool
	DisableInvert        bool
}

// DefaultFlags returns the flag set matching current BCH consensus
// rules.
func DefaultFlags() Flags {
	return Flags{
		RequireNullSignatureFailures: true,
		RequireBugValueZero:          true,
		RequireMinimalEncoding:       true,
		DisableMul:                   false,
		DisableBitwiseShifts:         false,
		DisableInvert:                true,
	}
}
