package errors

// Error codes for the Stave compiler.
// These codes are used in error messages and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Word resolution and annotation errors
// E0100-E0199: Parser errors
// E0700-E0799: IR construction (converter) errors
// E0800-E0899: IR validation errors
const (
	// E0001: Word resolution errors
	ErrorUndefinedWord = "E0001"

	// E0002: Duplicate colon definition
	ErrorDuplicateDefinition = "E0002"

	// E0003: More than one declared result
	ErrorMultipleResults = "E0003"

	// E0004: Loop index used outside a counted loop
	ErrorIndexOutsideLoop = "E0004"

	// Converter errors (E0700-E0799)

	// E0701: Branch arms net different stack depths
	ErrorUnbalancedBranches = "E0701"

	// E0702: Loop body nets a different depth than loop entry
	ErrorUnbalancedLoop = "E0702"

	// E0703: Operand requested from an empty symbolic stack
	ErrorStackUnderflow = "E0703"

	// E0704: Final stack depth disagrees with the declared effect
	ErrorEffectMismatch = "E0704"

	// Validator errors (E0800-E0899). Any of these surfacing against a
	// type-correct program is a converter defect, not a user error.

	// E0801: Register defined by more than one instruction
	ErrorMultipleDefinition = "E0801"

	// E0802: Use not dominated by its definition
	ErrorDominance = "E0802"

	// E0803: Phi incoming set differs from the real predecessor set
	ErrorPhiIncomplete = "E0803"

	// E0804: Phi after a non-phi instruction
	ErrorPhiMisplaced = "E0804"

	// E0805: Block unreachable from the entry block
	ErrorUnreachableBlock = "E0805"

	// E0806: Recorded pred/succ sets disagree with the branch targets
	ErrorEdgeMismatch = "E0806"
)

// GetErrorDescription returns a human-readable description of the error code.
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUndefinedWord:
		return "Word is used but neither builtin nor defined in the module"
	case ErrorDuplicateDefinition:
		return "Word is defined more than once"
	case ErrorMultipleResults:
		return "Definition declares more than one result"
	case ErrorIndexOutsideLoop:
		return "Loop index word used outside a counted loop"
	case ErrorUnbalancedBranches:
		return "Conditional arms leave the stack at different depths"
	case ErrorUnbalancedLoop:
		return "Loop body changes the stack depth between iterations"
	case ErrorStackUnderflow:
		return "Operation needs more values than the stack holds"
	case ErrorEffectMismatch:
		return "Definition body does not match its declared stack effect"
	case ErrorMultipleDefinition:
		return "SSA register has more than one definition"
	case ErrorDominance:
		return "Register is used where its definition does not dominate"
	case ErrorPhiIncomplete:
		return "Phi incoming blocks do not match the block's predecessors"
	case ErrorPhiMisplaced:
		return "Phi instruction appears after ordinary instructions"
	case ErrorUnreachableBlock:
		return "Block cannot be reached from the function entry"
	case ErrorEdgeMismatch:
		return "Recorded CFG edges disagree with the branch targets"
	default:
		return "Unknown error code"
	}
}

// IsValidatorCode reports whether a code denotes an IR validation failure.
// Validator failures indicate converter defects and are surfaced distinctly
// from ordinary compile errors.
func IsValidatorCode(code string) bool {
	return code >= "E0800" && code < "E0900"
}
