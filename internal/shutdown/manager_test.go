package shutdown

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qualitymap/internal/logger"
)

type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, name)
}

type named struct {
	name string
	rec  *recorder
	wait time.Duration
}

func (n *named) Shutdown() {
	time.Sleep(n.wait)
	n.rec.add(n.name)
}

func TestShutdownReverseOrder(t *testing.T) {
	rec := &recorder{}
	m := NewManager(logger.NewNop())
	m.Register("services", &named{name: "services", rec: rec})
	m.Register("controller", &named{name: "controller", rec: rec})

	m.Shutdown()

	assert.Equal(t, []string{"controller", "services"}, rec.order)
	require.Error(t, m.Context().Err())
	select {
	case <-m.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestShutdownRunsOnce(t *testing.T) {
	rec := &recorder{}
	m := NewManager(logger.NewNop())
	m.Register("a", &named{name: "a", rec: rec})

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"a"}, rec.order)
}

func TestShutdownTimeoutMovesOn(t *testing.T) {
	rec := &recorder{}
	m := NewManager(logger.NewNop())
	m.SetTimeout(10 * time.Millisecond)
	m.Register("fast", &named{name: "fast", rec: rec})
	m.Register("slow", &named{name: "slow", rec: rec, wait: 200 * time.Millisecond})

	start := time.Now()
	m.Shutdown()

	assert.Less(t, time.Since(start), 150*time.Millisecond)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"fast"}, rec.order)
}

func TestListenStopsWithShutdown(t *testing.T) {
	m := NewManager(logger.NewNop())
	m.Listen()
	m.Shutdown()

	select {
	case <-m.Done():
	case <-time.After(time.Second):
		t.Fatal("shutdown did not complete")
	}
}
