package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		size     string
		maxSize  int
		expected Params
	}{
		{
			name:     "defaults",
			expected: Params{Page: 1, Size: 10},
		},
		{
			name:     "explicit values",
			page:     "3",
			size:     "25",
			expected: Params{Page: 3, Size: 25},
		},
		{
			name:     "size capped before skip",
			page:     "2",
			size:     "500",
			maxSize:  MaxSize,
			expected: Params{Page: 2, Size: 100},
		},
		{
			name:     "no cap on unbounded endpoints",
			size:     "500",
			expected: Params{Page: 1, Size: 500},
		},
		{
			name:     "garbage falls back to defaults",
			page:     "abc",
			size:     "-4",
			expected: Params{Page: 1, Size: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.page, tt.size, tt.maxSize))
		})
	}
}

func TestSkipUsesCappedSize(t *testing.T) {
	p := Parse("3", "500", MaxSize)
	assert.Equal(t, int64(200), p.Skip())
	assert.Equal(t, int64(100), p.Limit())
}

func TestNewMeta(t *testing.T) {
	t.Run("first page", func(t *testing.T) {
		meta := NewMeta(Params{Page: 1, Size: 10}, 25)
		assert.Equal(t, 3, meta.TotalPages)
		assert.True(t, meta.HasNextPage)
		assert.False(t, meta.HasPrevPage)
	})

	t.Run("last page", func(t *testing.T) {
		meta := NewMeta(Params{Page: 3, Size: 10}, 25)
		assert.False(t, meta.HasNextPage)
		assert.True(t, meta.HasPrevPage)
	})

	t.Run("empty result", func(t *testing.T) {
		meta := NewMeta(Params{Page: 1, Size: 10}, 0)
		assert.Equal(t, 0, meta.TotalPages)
		assert.False(t, meta.HasNextPage)
		assert.False(t, meta.HasPrevPage)
	})

	t.Run("empty result on a later page", func(t *testing.T) {
		meta := NewMeta(Params{Page: 4, Size: 10}, 0)
		assert.Equal(t, 0, meta.TotalPages)
		assert.False(t, meta.HasNextPage)
		assert.False(t, meta.HasPrevPage)
	})

	t.Run("exact multiple", func(t *testing.T) {
		meta := NewMeta(Params{Page: 2, Size: 10}, 20)
		assert.Equal(t, 2, meta.TotalPages)
		assert.False(t, meta.HasNextPage)
		assert.True(t, meta.HasPrevPage)
	})
}
