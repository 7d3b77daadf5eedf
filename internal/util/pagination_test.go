package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		page, size    int
		offset, limit int
	}{
		{page: 1, size: 10, offset: 0, limit: 10},
		{page: 3, size: 10, offset: 20, limit: 10},
		{page: 0, size: 0, offset: 0, limit: DefaultPageSize},
		{page: 2, size: 500, offset: DefaultPageSize, limit: DefaultPageSize},
	}
	for _, tt := range tests {
		offset, limit := Calculate(tt.page, tt.size)
		assert.Equal(t, tt.offset, offset)
		assert.Equal(t, tt.limit, limit)
	}
}

func TestParseIntDefault(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 7, ParseIntDefault("7", 1))
	assert.Equal(t, 1, ParseIntDefault("", 1))
	assert.Equal(t, 1, ParseIntDefault("x", 1))
}

func TestMeta(t *testing.T) {
	t.Parallel()
	m := Meta(2, 10, 10, 25)
	assert.EqualValues(t, 3, m["total_pages"])
	assert.Equal(t, true, m["has_prev"])
	assert.Equal(t, true, m["has_next"])

	m = Meta(3, 20, 10, 25)
	assert.Equal(t, false, m["has_next"])
}
