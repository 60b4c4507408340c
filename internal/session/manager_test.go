package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerGetOrCreateReusesFlow(t *testing.T) {
	m := NewAuthManager(time.Minute)
	defer m.Close()

	first := m.GetOrCreate("15550001111")
	second := m.GetOrCreate("15550001111")
	assert.Same(t, first, second)

	other := m.GetOrCreate("15550002222")
	assert.NotSame(t, first, other)
}

func TestManagerGetReturnsNilForUnknown(t *testing.T) {
	m := NewAuthManager(time.Minute)
	defer m.Close()

	assert.Nil(t, m.Get("15550001111"))
}

func TestManagerDropRemovesFlow(t *testing.T) {
	m := NewAuthManager(time.Minute)
	defer m.Close()

	m.GetOrCreate("15550001111")
	m.Drop("15550001111")
	assert.Nil(t, m.Get("15550001111"))
}

func TestManagerEvictsIdleFlows(t *testing.T) {
	m := NewAuthManager(time.Minute)
	defer m.Close()

	current := time.Now()
	m.now = func() time.Time { return current }

	stale := m.GetOrCreate("15550001111")
	require.NotNil(t, stale)

	// Advance past the TTL; the next access sweeps the idle flow out.
	current = current.Add(2 * time.Minute)
	assert.Nil(t, m.Get("15550001111"))

	fresh := m.GetOrCreate("15550001111")
	assert.NotSame(t, stale, fresh)
	assert.Equal(t, AuthLogin, fresh.State)
}
