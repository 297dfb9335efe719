package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert conversation: %w", &pq.Error{Code: "23505", Constraint: "conversations_patient_id_doctor_id_key"})

	constraint, ok := IsUniqueViolation(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "conversations_patient_id_doctor_id_key", constraint)

	_, ok = IsUniqueViolation(&pq.Error{Code: "23503"})
	assert.False(t, ok, "foreign key violation is not a unique violation")

	_, ok = IsUniqueViolation(errors.New("boom"))
	assert.False(t, ok)
}
