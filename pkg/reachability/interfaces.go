package reachability

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

const defaultPollInterval = 5 * time.Second

// NetInterface is the subset of net.Interface the observer inspects.
type NetInterface struct {
	Name  string
	Flags net.Flags
	Addrs []net.Addr
}

// InterfaceLister enumerates the host's interfaces.
type InterfaceLister func() ([]NetInterface, error)

// SystemInterfaces lists interfaces through the net package.
func SystemInterfaces() ([]NetInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	out := make([]NetInterface, 0, len(ifaces))
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		out = append(out, NetInterface{Name: iface.Name, Flags: iface.Flags, Addrs: addrs})
	}
	return out, nil
}

// InterfaceObserver polls the host's interfaces and reports a Path on every tick.
type InterfaceObserver struct {
	interval time.Duration
	list     InterfaceLister

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewInterfaceObserver polls every interval using list (SystemInterfaces when nil).
func NewInterfaceObserver(interval time.Duration, list InterfaceLister) *InterfaceObserver {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if list == nil {
		list = SystemInterfaces
	}
	return &InterfaceObserver{interval: interval, list: list}
}

// Start delivers one observation synchronously, then polls in the background.
func (o *InterfaceObserver) Start(handler func(Path)) error {
	if handler == nil {
		return fmt.Errorf("path handler must not be nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		return fmt.Errorf("interface observer already started")
	}

	handler(o.observe())

	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel
	o.wg.Add(1)
	go o.loop(ctx, handler)
	return nil
}

// Cancel stops polling without waiting, so it may be called from a handler
// running on the polling goroutine. Use Wait to block until the loop exits.
func (o *InterfaceObserver) Cancel() {
	o.mu.Lock()
	cancel := o.cancel
	o.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the polling loop has exited. It must not be called from
// a handler.
func (o *InterfaceObserver) Wait() {
	o.wg.Wait()
}

func (o *InterfaceObserver) loop(ctx context.Context, handler func(Path)) {
	defer o.wg.Done()
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			handler(o.observe())
		}
	}
}

func (o *InterfaceObserver) observe() Path {
	ifaces, err := o.list()
	if err != nil {
		return Path{}
	}
	return PathFromInterfaces(ifaces)
}

// PathFromInterfaces derives a Path from interface state. An interface counts
// when it is up, running and holds a global unicast address.
func PathFromInterfaces(ifaces []NetInterface) Path {
	var p Path
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagRunning == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if !hasGlobalUnicast(iface.Addrs) {
			continue
		}
		p.Satisfied = true
		p.Interfaces = append(p.Interfaces, interfaceTypeFor(iface.Name))
	}
	return p
}

func hasGlobalUnicast(addrs []net.Addr) bool {
	for _, a := range addrs {
		var ip net.IP
		switch v := a.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip != nil && ip.IsGlobalUnicast() {
			return true
		}
	}
	return false
}

// interfaceTypeFor guesses the interface kind from common Linux/BSD names.
// Darwin reuses en* for both Wi-Fi and wired ports, so on macOS an en0
// Wi-Fi link is reported as wired Ethernet; the result is a best guess.
func interfaceTypeFor(name string) InterfaceType {
	n := strings.ToLower(name)
	switch {
	case hasAnyPrefix(n, "wl", "wifi", "ath"):
		return InterfaceWiFi
	case hasAnyPrefix(n, "wwan", "rmnet", "ccmni", "pdp_ip"):
		return InterfaceCellular
	case hasAnyPrefix(n, "eth", "en", "em"):
		return InterfaceWiredEthernet
	case hasAnyPrefix(n, "lo"):
		return InterfaceLoopback
	default:
		return InterfaceOther
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
