package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatforms(t *testing.T) {
	platforms, err := parsePlatforms("1, 2,,7 ")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 7}, platforms)

	_, err = parsePlatforms("1,ios")
	assert.Error(t, err)
}
