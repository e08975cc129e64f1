package postgres

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	require.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	require.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	require.False(t, IsUniqueViolation(fmt.Errorf("boom")))
}

func TestUUIDArray(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	require.Equal(t, pq.StringArray{a.String(), b.String()}, UUIDArray([]uuid.UUID{a, b}))
	require.Empty(t, UUIDArray(nil))
}
