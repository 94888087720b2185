package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseSlot runs the behaviour every backend must share.
func exerciseSlot(t *testing.T, slot Slot) {
	t.Helper()
	ctx := context.Background()

	_, err := slot.Get(ctx, "cart:missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, slot.Set(ctx, "cart:a", []byte(`[{"id":"1"}]`)))
	got, err := slot.Get(ctx, "cart:a")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(got))

	// last writer wins
	require.NoError(t, slot.Set(ctx, "cart:a", []byte(`[]`)))
	got, err = slot.Get(ctx, "cart:a")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	// keys are independent
	require.NoError(t, slot.Set(ctx, "cart:b", []byte(`"b"`)))
	got, err = slot.Get(ctx, "cart:a")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, slot.Delete(ctx, "cart:a"))
	_, err = slot.Get(ctx, "cart:a")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting a missing key is not an error
	assert.NoError(t, slot.Delete(ctx, "cart:a"))
}

func TestMemory_Slot(t *testing.T) {
	exerciseSlot(t, NewMemory())
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	value := []byte("abc")

	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
