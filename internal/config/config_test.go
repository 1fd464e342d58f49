package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphfuzz/graphfuzz-go/internal/config"
	"github.com/graphfuzz/graphfuzz-go/internal/ferrors"
)

func TestDefaultsAreValid(t *testing.T) {
	assert.NoError(t, config.Defaults("SCC").Validate())
}

func TestUnknownFuzzerNameIsSetupError(t *testing.T) {
	r := config.Defaults("NotAnAlgorithm")
	err := r.Validate()
	assert.Error(t, err)
	assert.True(t, ferrors.Is(err, ferrors.Setup))
}

func TestDiskSchedulerRequiresFolder(t *testing.T) {
	r := config.Defaults("SCC")
	r.Scheduler = config.SchedulerDisk
	assert.Error(t, r.Validate())

	r.Folder = "corpus"
	assert.NoError(t, r.Validate())
}

func TestUnknownFeedbackModeIsSetupError(t *testing.T) {
	r := config.Defaults("SCC")
	r.FeedbackCheckType = "bogus"
	err := r.Validate()
	assert.Error(t, err)
	assert.True(t, ferrors.Is(err, ferrors.Setup))
}
