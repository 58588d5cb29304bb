package service_test

import (
	"testing"

	"github.com/google/uuid"
)

// newUUID returns a random id for referencing rows that do not exist
func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}
