package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishSuccess(t *testing.T) {
	assert.NoError(t, finish(0, nil))
}

func TestFinishNonZeroExitCarriesCode(t *testing.T) {
	err := finish(2, nil)
	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Empty(t, exitErr.Message)
}

func TestFinishErrorMapsToRuntimeFailure(t *testing.T) {
	err := finish(0, errors.New("trace scan failed"))
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "trace scan failed", exitErr.Message)
}

func TestFinishErrorWinsOverExitCode(t *testing.T) {
	err := finish(1, errors.New("boom"))
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
}
