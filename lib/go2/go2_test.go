package go2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, *Pointer(3))
	assert.Nil(t, PointerIf(false, "x"))
	assert.Equal(t, "x", *PointerIf(true, "x"))
	assert.True(t, Contains([]string{"dot", "json"}, "json"))
	assert.False(t, Contains([]string{"dot"}, "elk"))
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
}
