package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	gen := New()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.NewID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "generated a duplicate id: %s", id)
		seen[id] = true
	}
}
