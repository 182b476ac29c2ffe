package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		page, pageSize := NormalizePage(0, 0)
		assert.Equal(t, 1, page)
		assert.Equal(t, DefaultPageSize, pageSize)
	})

	t.Run("negative values", func(t *testing.T) {
		t.Parallel()
		page, pageSize := NormalizePage(-3, -10)
		assert.Equal(t, 1, page)
		assert.Equal(t, DefaultPageSize, pageSize)
	})

	t.Run("oversized page size is capped", func(t *testing.T) {
		t.Parallel()
		page, pageSize := NormalizePage(2, 5000)
		assert.Equal(t, 2, page)
		assert.Equal(t, MaxPageSize, pageSize)
	})

	t.Run("in-range values pass through", func(t *testing.T) {
		t.Parallel()
		page, pageSize := NormalizePage(3, 25)
		assert.Equal(t, 3, page)
		assert.Equal(t, 25, pageSize)
	})
}
