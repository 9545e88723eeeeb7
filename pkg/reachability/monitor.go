package reachability

import (
	"context"
	"fmt"
	"sync"
)

// PathObserver is a platform network-status source. Start begins delivering
// observations to handler (possibly from another goroutine); Cancel stops it.
type PathObserver interface {
	Start(handler func(Path)) error
	Cancel()
}

// Monitor keeps the latest connectivity snapshot and reports transitions.
type Monitor struct {
	observer PathObserver

	mu        sync.RWMutex
	connected bool
	connType  ConnectionType
	onChange  func(ConnectionType)

	closeOnce sync.Once
	done      chan struct{}
}

// New starts observing immediately. The monitor stops when Close is called or
// ctx is done, whichever comes first.
func New(ctx context.Context, observer PathObserver) (*Monitor, error) {
	if observer == nil {
		return nil, fmt.Errorf("path observer must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m := &Monitor{
		observer: observer,
		connType: ConnectionNone,
		done:     make(chan struct{}),
	}
	if err := observer.Start(m.handlePath); err != nil {
		return nil, fmt.Errorf("start path observer: %w", err)
	}

	go func() {
		select {
		case <-ctx.Done():
			m.Close()
		case <-m.done:
		}
	}()
	return m, nil
}

// IsConnected reports whether the last observed path was satisfied.
func (m *Monitor) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// ConnectionType returns the last derived connection type.
func (m *Monitor) ConnectionType() ConnectionType {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connType
}

// OnChange registers fn to run whenever the connection type changes.
// Passing nil removes the callback.
func (m *Monitor) OnChange(fn func(ConnectionType)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// Close stops observing. It is safe to call more than once, including from
// an OnChange callback.
func (m *Monitor) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)
		m.observer.Cancel()
	})
	return nil
}

func (m *Monitor) handlePath(p Path) {
	select {
	case <-m.done:
		return
	default:
	}
	next := Classify(p)

	m.mu.Lock()
	m.connected = p.Satisfied
	changed := next != m.connType
	m.connType = next
	cb := m.onChange
	m.mu.Unlock()

	if changed && cb != nil {
		cb(next)
	}
}
