package appointments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	statuses := []string{"PENDING", "APPROVED", "REJECTED", "COMPLETED", "CANCELED"}
	allowed := map[string]bool{
		"PENDING->APPROVED":   true,
		"PENDING->REJECTED":   true,
		"APPROVED->COMPLETED": true,
		"APPROVED->CANCELED":  true,
		"APPROVED->PENDING":   true,
	}

	for _, current := range statuses {
		for _, next := range statuses {
			key := current + "->" + next
			t.Run(key, func(t *testing.T) {
				assert.Equal(t, allowed[key], CanTransition(current, next))
			})
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal("PENDING"))
	assert.False(t, IsTerminal("APPROVED"))
	assert.True(t, IsTerminal("REJECTED"))
	assert.True(t, IsTerminal("COMPLETED"))
	assert.True(t, IsTerminal("CANCELED"))
}
