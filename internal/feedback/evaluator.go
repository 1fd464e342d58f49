package feedback

// Mode selects one of the five interestingness rules of spec §4.3.
type Mode string

const (
	ModeRegular     Mode = "regular"
	ModeCoverage    Mode = "coverage"
	ModeCombination Mode = "combination"
	ModeBranch      Mode = "branch"
	ModeNone        Mode = "none"
)

// ValidModes lists every accepted --feedback-check-type value, in the CLI's
// declared order (spec §6).
var ValidModes = []Mode{ModeRegular, ModeCoverage, ModeCombination, ModeBranch, ModeNone}

// ParseMode validates a CLI-supplied mode string.
func ParseMode(s string) (Mode, bool) {
	for _, m := range ValidModes {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Input bundles everything one iteration's feedback decision can see: did
// the tester report a discrepancy, and what coverage points did the
// instrumented run observe (nil when the mode doesn't track coverage).
type Input struct {
	HasDiscrepancy bool
	Hits           []Point
}

// Evaluator implements the contract of spec §4.3: a deterministic function
// of its inputs and the current coverage set.
type Evaluator struct {
	mode     Mode
	coverage *CoverageSet
}

// New returns an Evaluator for mode, backed by the given shared coverage
// set (coverage and branch modes are both "new coverage point" checks over
// the same kind of shared state, per spec §4.3; which axis -- line or
// branch -- a Hit represents is the caller's convention, not the
// evaluator's).
func New(mode Mode, coverage *CoverageSet) *Evaluator {
	return &Evaluator{mode: mode, coverage: coverage}
}

// Evaluate returns whether the graph that produced in is interesting enough
// to append to the corpus.
func (e *Evaluator) Evaluate(in Input) bool {
	switch e.mode {
	case ModeNone:
		return true
	case ModeRegular:
		return in.HasDiscrepancy
	case ModeCoverage, ModeBranch:
		return e.coverage.AddNew(in.Hits) > 0
	case ModeCombination:
		newPoints := e.coverage.AddNew(in.Hits) > 0
		return in.HasDiscrepancy || newPoints
	default:
		return false
	}
}
