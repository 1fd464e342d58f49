package ferrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphfuzz/graphfuzz-go/internal/ferrors"
)

func TestWrapRoundTripsKind(t *testing.T) {
	base := errors.New("empty corpus")
	err := ferrors.Wrap(ferrors.Recoverable, base)
	assert.Equal(t, ferrors.Recoverable, ferrors.ClassifyOf(err))
	assert.True(t, ferrors.Is(err, ferrors.Recoverable))
	assert.True(t, errors.Is(err, base))
}

func TestUnclassifiedDefaultsToFatal(t *testing.T) {
	assert.Equal(t, ferrors.Fatal, ferrors.ClassifyOf(errors.New("boom")))
}

func TestWrapNilIsNil(t *testing.T) {
	assert.NoError(t, ferrors.Wrap(ferrors.Setup, nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "setup", ferrors.Setup.String())
	assert.Equal(t, fmt.Sprint(ferrors.Setup), "setup")
}
