package xident

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator(WithMachineID(func() (uint16, error) {
		return 42, nil
	}))
	require.NoError(t, err)
	return g
}

func TestGeneratorNew(t *testing.T) {
	g := newTestGenerator(t)

	id, err := g.New()
	require.NoError(t, err)
	assert.Positive(t, id)
}

func TestGeneratorNewStringRoundTrip(t *testing.T) {
	g := newTestGenerator(t)

	s, err := g.NewString()
	require.NoError(t, err)
	assert.NotEmpty(t, s)

	id, err := Parse(s)
	require.NoError(t, err)
	assert.Equal(t, s, strconv.FormatInt(id, 36))
}

func TestGeneratorUniqueness(t *testing.T) {
	g := newTestGenerator(t)

	const n = 1000
	seen := make(map[int64]struct{}, n)
	for range n {
		id, err := g.New()
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
}

func TestGeneratorConcurrentUniqueness(t *testing.T) {
	g := newTestGenerator(t)

	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[int64]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				id, err := g.New()
				if err != nil {
					continue
				}
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestNilGenerator(t *testing.T) {
	var g *Generator
	_, err := g.New()
	assert.ErrorIs(t, err, ErrNilGenerator)

	var zero Generator
	_, err = zero.NewString()
	assert.ErrorIs(t, err, ErrNilGenerator)
}

func TestNewGeneratorCheckMachineIDFails(t *testing.T) {
	_, err := NewGenerator(
		WithMachineID(func() (uint16, error) { return 1, nil }),
		WithCheckMachineID(func(uint16) bool { return false }),
	)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewGeneratorMachineIDError(t *testing.T) {
	wantErr := errors.New("boom")
	_, err := NewGenerator(WithMachineID(func() (uint16, error) {
		return 0, wantErr
	}))
	assert.Error(t, err)
}

func TestNewGeneratorNilOptionSkipped(t *testing.T) {
	g, err := NewGenerator(nil, WithMachineID(func() (uint16, error) {
		return 7, nil
	}))
	require.NoError(t, err)
	_, err = g.New()
	assert.NoError(t, err)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "1a2b3c", false},
		{"uppercase tolerated", "1A2B3C", false},
		{"empty", "", true},
		{"garbage", "!!!", true},
		{"zero", "0", true},
		{"negative", "-1a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, id)
		})
	}
}

func TestGlobalAutoInit(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	s, err := NewString()
	require.NoError(t, err)
	assert.NotEmpty(t, s)

	id, err := New()
	require.NoError(t, err)
	assert.Positive(t, id)
}

func TestInitTwice(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	require.NoError(t, Init(WithMachineID(func() (uint16, error) {
		return 3, nil
	})))
	assert.ErrorIs(t, Init(), ErrAlreadyInitialized)
}

func TestInitFailureDisablesAutoInit(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	err := Init(WithMachineID(func() (uint16, error) {
		return 0, errors.New("transient")
	}))
	require.Error(t, err)

	// Auto-init must not override explicit-but-failed Init.
	_, err = New()
	assert.ErrorIs(t, err, ErrNotInitialized)

	// Retrying Init recovers.
	require.NoError(t, Init(WithMachineID(func() (uint16, error) {
		return 9, nil
	})))
	_, err = New()
	assert.NoError(t, err)
}
