package reachability

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"
)

// fakeObserver lets tests push paths by hand.
type fakeObserver struct {
	mu        sync.Mutex
	handler   func(Path)
	cancelled int
}

func (f *fakeObserver) Start(handler func(Path)) error {
	f.mu.Lock()
	f.handler = handler
	f.mu.Unlock()
	return nil
}

func (f *fakeObserver) Cancel() {
	f.mu.Lock()
	f.cancelled++
	f.mu.Unlock()
}

func (f *fakeObserver) push(p Path) {
	f.mu.Lock()
	h := f.handler
	f.mu.Unlock()
	h(p)
}

func (f *fakeObserver) cancelCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled
}

func TestClassifyPriority(t *testing.T) {
	cases := []struct {
		name string
		path Path
		want ConnectionType
	}{
		{"wifi beats everything", Path{Satisfied: true, Interfaces: []InterfaceType{InterfaceWiredEthernet, InterfaceCellular, InterfaceWiFi}}, ConnectionWiFi},
		{"cellular beats ethernet", Path{Satisfied: true, Interfaces: []InterfaceType{InterfaceWiredEthernet, InterfaceCellular}}, ConnectionCellular},
		{"ethernet", Path{Satisfied: true, Interfaces: []InterfaceType{InterfaceWiredEthernet}}, ConnectionEthernet},
		{"other when satisfied", Path{Satisfied: true, Interfaces: []InterfaceType{InterfaceOther}}, ConnectionOther},
		{"none when unsatisfied", Path{}, ConnectionNone},
	}
	for _, tc := range cases {
		if got := Classify(tc.path); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestMonitorStartsOnConstructionAndTracksState(t *testing.T) {
	obs := &fakeObserver{}
	m, err := New(context.Background(), obs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Close()

	if m.IsConnected() || m.ConnectionType() != ConnectionNone {
		t.Fatalf("expected initial disconnected state")
	}

	obs.push(Path{Satisfied: true, Interfaces: []InterfaceType{InterfaceWiFi}})
	if !m.IsConnected() || m.ConnectionType() != ConnectionWiFi {
		t.Fatalf("state = %v/%s", m.IsConnected(), m.ConnectionType())
	}
}

func TestMonitorNotifiesOnlyOnTransitions(t *testing.T) {
	obs := &fakeObserver{}
	m, err := New(context.Background(), obs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Close()

	var got []ConnectionType
	m.OnChange(func(c ConnectionType) { got = append(got, c) })

	wifi := Path{Satisfied: true, Interfaces: []InterfaceType{InterfaceWiFi}}
	obs.push(wifi)
	obs.push(wifi)
	obs.push(Path{Satisfied: true, Interfaces: []InterfaceType{InterfaceWiFi, InterfaceWiredEthernet}})
	obs.push(Path{Satisfied: true, Interfaces: []InterfaceType{InterfaceCellular}})
	obs.push(Path{})
	obs.push(Path{})

	want := []ConnectionType{ConnectionWiFi, ConnectionCellular, ConnectionNone}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("notifications = %v, want %v", got, want)
		}
	}
}

func TestMonitorCloseIsIdempotentAndIgnoresLatePaths(t *testing.T) {
	obs := &fakeObserver{}
	m, err := New(context.Background(), obs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Close()
	m.Close()
	if obs.cancelCount() != 1 {
		t.Fatalf("observer cancelled %d times", obs.cancelCount())
	}

	obs.push(Path{Satisfied: true, Interfaces: []InterfaceType{InterfaceWiFi}})
	if m.IsConnected() {
		t.Fatalf("closed monitor should ignore observations")
	}
}

func TestMonitorStopsWhenContextDone(t *testing.T) {
	obs := &fakeObserver{}
	ctx, cancel := context.WithCancel(context.Background())
	if _, err := New(ctx, obs); err != nil {
		t.Fatalf("New: %v", err)
	}
	cancel()

	deadline := time.Now().Add(time.Second)
	for obs.cancelCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("observer not cancelled after context done")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewRejectsNilObserver(t *testing.T) {
	if _, err := New(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil observer")
	}
}

func ipNet(s string) *net.IPNet {
	ip, n, _ := net.ParseCIDR(s)
	n.IP = ip
	return n
}

func TestPathFromInterfaces(t *testing.T) {
	up := net.FlagUp | net.FlagRunning
	ifaces := []NetInterface{
		{Name: "lo", Flags: up | net.FlagLoopback, Addrs: []net.Addr{ipNet("127.0.0.1/8")}},
		{Name: "eth0", Flags: up, Addrs: []net.Addr{ipNet("10.0.0.2/24")}},
		{Name: "wlan0", Flags: net.FlagUp, Addrs: []net.Addr{ipNet("192.168.1.5/24")}},
		{Name: "docker0", Flags: up, Addrs: []net.Addr{ipNet("fe80::1/64")}},
	}

	p := PathFromInterfaces(ifaces)
	if !p.Satisfied {
		t.Fatalf("expected satisfied path")
	}
	if len(p.Interfaces) != 1 || p.Interfaces[0] != InterfaceWiredEthernet {
		t.Fatalf("interfaces = %v", p.Interfaces)
	}
	if Classify(p) != ConnectionEthernet {
		t.Fatalf("classify = %s", Classify(p))
	}
	if PathFromInterfaces(ifaces[:1]).Satisfied {
		t.Fatalf("loopback alone must not satisfy")
	}
}

func TestInterfaceObserverDeliversInitialAndPolledPaths(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	lister := func() ([]NetInterface, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return nil, nil
		}
		return []NetInterface{{Name: "wlan0", Flags: net.FlagUp | net.FlagRunning, Addrs: []net.Addr{ipNet("192.168.1.5/24")}}}, nil
	}

	obs := NewInterfaceObserver(10*time.Millisecond, lister)
	m, err := New(context.Background(), obs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Close()

	if m.IsConnected() {
		t.Fatalf("initial observation should be disconnected")
	}

	deadline := time.Now().Add(time.Second)
	for m.ConnectionType() != ConnectionWiFi {
		if time.Now().After(deadline) {
			t.Fatalf("polling never reported wifi")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if err := obs.Start(func(Path) {}); err == nil {
		t.Fatalf("second Start should fail")
	}
}

func TestMonitorCloseFromCallbackDoesNotDeadlock(t *testing.T) {
	var mu sync.Mutex
	online := false
	lister := func() ([]NetInterface, error) {
		mu.Lock()
		defer mu.Unlock()
		if !online {
			return nil, nil
		}
		return []NetInterface{{Name: "wlan0", Flags: net.FlagUp | net.FlagRunning, Addrs: []net.Addr{ipNet("10.0.0.2/24")}}}, nil
	}

	obs := NewInterfaceObserver(10*time.Millisecond, lister)
	m, err := New(context.Background(), obs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	closed := make(chan struct{})
	m.OnChange(func(ConnectionType) {
		m.Close()
		close(closed)
	})
	mu.Lock()
	online = true
	mu.Unlock()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatalf("Close from OnChange callback did not return")
	}

	waited := make(chan struct{})
	go func() {
		obs.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatalf("polling loop still running after Close")
	}
}

func TestInterfaceTypeForNames(t *testing.T) {
	cases := map[string]InterfaceType{
		"wlan0":  InterfaceWiFi,
		"wwan0":  InterfaceCellular,
		"eth0":   InterfaceWiredEthernet,
		"enp3s0": InterfaceWiredEthernet,
		"en0":    InterfaceWiredEthernet,
		"lo":     InterfaceLoopback,
		"tun0":   InterfaceOther,
	}
	for name, want := range cases {
		if got := interfaceTypeFor(name); got != want {
			t.Fatalf("%s: got %d want %d", name, got, want)
		}
	}
}
