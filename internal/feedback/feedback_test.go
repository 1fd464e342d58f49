package feedback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphfuzz/graphfuzz-go/internal/feedback"
)

func TestNoneModeAlwaysInteresting(t *testing.T) {
	e := feedback.New(feedback.ModeNone, feedback.NewCoverageSet())
	assert.True(t, e.Evaluate(feedback.Input{}))
	assert.True(t, e.Evaluate(feedback.Input{HasDiscrepancy: true}))
}

func TestRegularModeFollowsDiscrepancy(t *testing.T) {
	e := feedback.New(feedback.ModeRegular, feedback.NewCoverageSet())
	assert.False(t, e.Evaluate(feedback.Input{HasDiscrepancy: false}))
	assert.True(t, e.Evaluate(feedback.Input{HasDiscrepancy: true}))
}

func TestCoverageModeNewPointsOnly(t *testing.T) {
	cov := feedback.NewCoverageSet()
	e := feedback.New(feedback.ModeCoverage, cov)

	hit := []feedback.Point{{File: "scc.go", ID: 42}}
	assert.True(t, e.Evaluate(feedback.Input{Hits: hit}))
	// Same point again is not new.
	assert.False(t, e.Evaluate(feedback.Input{Hits: hit}))
}

func TestCombinationModeEitherSignal(t *testing.T) {
	cov := feedback.NewCoverageSet()
	e := feedback.New(feedback.ModeCombination, cov)

	assert.True(t, e.Evaluate(feedback.Input{HasDiscrepancy: true}))
	assert.True(t, e.Evaluate(feedback.Input{Hits: []feedback.Point{{File: "a", ID: 1}}}))
	assert.False(t, e.Evaluate(feedback.Input{}))
}

func TestCoverageSetGrowthIsMonotonic(t *testing.T) {
	cov := feedback.NewCoverageSet()
	cov.AddNew([]feedback.Point{{File: "a", ID: 1}})
	first := cov.Len()
	cov.AddNew([]feedback.Point{{File: "a", ID: 1}, {File: "a", ID: 2}})
	assert.GreaterOrEqual(t, cov.Len(), first)
	assert.Equal(t, 2, cov.Len())
}

func TestParseMode(t *testing.T) {
	m, ok := feedback.ParseMode("branch")
	assert.True(t, ok)
	assert.Equal(t, feedback.ModeBranch, m)

	_, ok = feedback.ParseMode("bogus")
	assert.False(t, ok)
}
