package qti

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDRegistryFormat(t *testing.T) {
	reg := NewIDRegistry()
	assert.Equal(t, UniqueIdentifier("ChoiceInteraction-0000"), reg.Next("ChoiceInteraction"))
	assert.Equal(t, UniqueIdentifier("ChoiceInteraction-0001"), reg.Next("ChoiceInteraction"))
	// counters are independent per type
	assert.Equal(t, UniqueIdentifier("SimpleChoice-0000"), reg.Next("SimpleChoice"))
}

func TestIDRegistryUniqueness(t *testing.T) {
	reg := NewIDRegistry()
	seen := make(map[UniqueIdentifier]bool)
	for i := 0; i < 1000; i++ {
		id := reg.Next("AssessmentItem")
		require.False(t, seen[id], "duplicate identifier %s", id)
		seen[id] = true
	}
	assert.Equal(t, UniqueIdentifier("AssessmentItem-03e8"), reg.Next("AssessmentItem"))
}

func TestIDRegistryHexCounter(t *testing.T) {
	reg := NewIDRegistry()
	for i := 0; i < 16; i++ {
		reg.Next("Prompt")
	}
	assert.Equal(t, UniqueIdentifier(fmt.Sprintf("Prompt-%04x", 16)), reg.Next("Prompt"))
}
