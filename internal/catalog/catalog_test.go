package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTime(t *testing.T) {
	t.Parallel()

	for _, known := range Times {
		assert.True(t, ValidTime(known), known)
	}

	assert.False(t, ValidTime("09:30"))
	assert.False(t, ValidTime("9:00"))
	assert.False(t, ValidTime("18:00:00"))
	assert.False(t, ValidTime(""))
}

func TestValidDate(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidDate("2025-08-30"))
	assert.False(t, ValidDate("30-08-2025"))
	assert.False(t, ValidDate("2025-13-01"))
	assert.False(t, ValidDate("2025-08-30T18:00"))
	assert.False(t, ValidDate(""))
}

func TestCatalogSize(t *testing.T) {
	t.Parallel()

	assert.Len(t, Times, 10)
}
