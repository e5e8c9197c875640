package myinflight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	guard := NewGuard()

	t.Run("Second acquire on same key is rejected", func(t *testing.T) {
		assert.True(t, guard.TryAcquire("shopper_1:checkout"))
		assert.False(t, guard.TryAcquire("shopper_1:checkout"))
	})

	t.Run("Different keys do not block each other", func(t *testing.T) {
		assert.True(t, guard.TryAcquire("shopper_2:checkout"))
	})

	t.Run("Release makes the key available again", func(t *testing.T) {
		guard.Release("shopper_1:checkout")
		assert.True(t, guard.TryAcquire("shopper_1:checkout"))
	})
}
