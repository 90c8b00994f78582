package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Subscribe(t *testing.T) {
	v := NewValue(1)

	ch, cancel := v.Subscribe()
	defer cancel()

	assert.Equal(t, 1, <-ch, "current snapshot must be delivered on subscribe")

	v.Set(2)
	assert.Equal(t, 2, <-ch)

	v.Set(3)
	v.Set(4)
	assert.Equal(t, 4, <-ch, "slow subscriber must see only the latest snapshot")

	select {
	case got := <-ch:
		t.Fatalf("unexpected snapshot %d", got)
	default:
	}
}

func TestValue_Update(t *testing.T) {
	v := NewValue([]string{"a"})

	got := v.Update(func(s []string) []string { return append(s, "b") })
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, []string{"a", "b"}, v.Get())
}

func TestValue_Cancel(t *testing.T) {
	v := NewValue("x")

	ch, cancel := v.Subscribe()
	<-ch

	cancel()
	cancel()

	_, ok := <-ch
	require.False(t, ok, "channel must be closed after cancel")

	// publishing after cancel must not panic
	v.Set("y")
	assert.Equal(t, "y", v.Get())
}
