package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oncosense/domain/core"
	"oncosense/domain/screening"
)

func TestFindEdges_TwentyPercent(t *testing.T) {
	uids := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	scores := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	lower, upper, err := FindEdges(uids, scores, 0.2)
	require.NoError(t, err)

	assert.Equal(t, []screening.Edge{{UID: "a", Score: 1}, {UID: "b", Score: 2}}, lower)
	assert.Equal(t, []screening.Edge{{UID: "i", Score: 9}, {UID: "j", Score: 10}}, upper)
}

func TestFindEdges_TooFewRows(t *testing.T) {
	lower, upper, err := FindEdges([]string{"a", "b"}, []float64{0.1, 0.2}, 0.1)
	require.NoError(t, err)
	assert.Empty(t, lower)
	assert.Empty(t, upper)
}

func TestFindEdges_NoOverlap(t *testing.T) {
	uids := []string{"a", "b", "c"}
	scores := []float64{-1, 0, 1}

	lower, upper, err := FindEdges(uids, scores, 1)
	require.NoError(t, err)
	assert.Equal(t, []screening.Edge{{UID: "a", Score: -1}}, lower)
	assert.Equal(t, []screening.Edge{{UID: "c", Score: 1}}, upper)
}

func TestFindEdges_InvalidInput(t *testing.T) {
	_, _, err := FindEdges([]string{"a"}, []float64{1, 2}, 0.1)
	assert.ErrorIs(t, err, core.ErrInvalidColumns)

	_, _, err = FindEdges([]string{"a"}, []float64{1}, 0)
	assert.ErrorIs(t, err, core.ErrNegativeNumber)

	_, _, err = FindEdges([]string{"a"}, []float64{1}, 1.5)
	assert.ErrorIs(t, err, core.ErrNegativeNumber)
}
