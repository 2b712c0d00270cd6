package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedKeyComparator(t *testing.T) {
	asc := AscOrderedKeyComparator[int]()
	assert.Equal(t, int64(0), asc(3, 3))
	assert.Equal(t, int64(-1), asc(1, 3))
	assert.Equal(t, int64(1), asc(3, 1))

	desc := DescOrderedKeyComparator[int]()
	assert.Equal(t, int64(0), desc(3, 3))
	assert.Equal(t, int64(1), desc(1, 3))
	assert.Equal(t, int64(-1), desc(3, 1))

	strAsc := AscOrderedKeyComparator[string]()
	assert.Equal(t, int64(-1), strAsc("abc", "abd"))
	assert.Equal(t, int64(1), strAsc("b", "abd"))

	fAsc := AscOrderedKeyComparator[float64]()
	assert.Equal(t, int64(-1), fAsc(0.1, 0.2))
}
