package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

func TestToFixedArray_RejectsWrongLength(t *testing.T) {
	_, err := toFixedArray([]int{1, 2}, domain.RawSlotCount)
	require.Error(t, err)
}

func TestToFixedArray_CopiesInOrder(t *testing.T) {
	out, err := toFixedArray([]int{2, 0, 3}, domain.RawSlotCount)
	require.NoError(t, err)
	assert.Equal(t, [domain.RawSlotCount]int{2, 0, 3}, out)
}

func TestToSocketVector_RejectsWrongLength(t *testing.T) {
	_, err := toSocketVector([]int{0, 0, 0})
	require.Error(t, err)
}

func TestToSocketVector_CopiesInOrder(t *testing.T) {
	out, err := toSocketVector([]int{1, 0, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, domain.SocketVector{1, 0, 2, 0}, out)
}

func TestParseSkillFlags_RejectsMissingEquals(t *testing.T) {
	_, err := parseSkillFlags([]string{"guard_up"})
	require.Error(t, err)
}

func TestParseSkillFlags_ParsesIDLevelPairs(t *testing.T) {
	out, err := parseSkillFlags([]string{"guard_up=2", "stamina_surge=1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"guard_up": 2, "stamina_surge": 1}, out)
}
