package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCircularDependencyThreeNodeCycle(t *testing.T) {
	siblings := map[string]string{
		"B": "C * 2",
		"C": "A + 1",
	}
	cycle, err := DetectCircularDependency("A", "B + 10", siblings)
	require.Error(t, err)
	var cerr *CircularDependencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, []string{"A", "B", "C", "A"}, cycle)
	assert.Equal(t, cycle, cerr.Path)
}

func TestDetectCircularDependencySelfReference(t *testing.T) {
	cycle, err := DetectCircularDependency("BASIC", "BASIC * 1.1", nil)
	require.Error(t, err)
	assert.Equal(t, []string{"BASIC", "BASIC"}, cycle)
}

func TestDetectCircularDependencyAcyclic(t *testing.T) {
	siblings := map[string]string{
		"BASIC": "GROSS * 0.4",
		"HRA":   "BASIC * 0.5",
	}
	cycle, err := DetectCircularDependency("SPECIAL", "GROSS - BASIC - HRA", siblings)
	assert.NoError(t, err)
	assert.Nil(t, cycle)
}

func TestDetectCircularDependencyEditBreaksCycle(t *testing.T) {
	// The candidate formula overrides the persisted one, so editing a
	// cyclic component to a clean formula passes.
	siblings := map[string]string{
		"A": "B + 1",
		"B": "A + 1",
	}
	cycle, err := DetectCircularDependency("A", "GROSS * 0.4", siblings)
	assert.NoError(t, err)
	assert.Nil(t, cycle)
}

func TestDetectCircularDependencyInvalidSibling(t *testing.T) {
	siblings := map[string]string{
		"B": "not a formula ;;",
	}
	_, err := DetectCircularDependency("A", "B + 1", siblings)
	assert.Error(t, err)
}
