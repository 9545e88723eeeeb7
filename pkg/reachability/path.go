// Package reachability tracks network connectivity and the kind of interface
// currently carrying traffic.
package reachability

// ConnectionType is the derived classification of the current network path.
type ConnectionType int

const (
	ConnectionNone ConnectionType = iota
	ConnectionWiFi
	ConnectionCellular
	ConnectionEthernet
	ConnectionOther
)

func (c ConnectionType) String() string {
	switch c {
	case ConnectionWiFi:
		return "wifi"
	case ConnectionCellular:
		return "cellular"
	case ConnectionEthernet:
		return "ethernet"
	case ConnectionOther:
		return "other"
	default:
		return "none"
	}
}

// InterfaceType is the physical kind of an active interface.
type InterfaceType int

const (
	InterfaceOther InterfaceType = iota
	InterfaceWiFi
	InterfaceCellular
	InterfaceWiredEthernet
	InterfaceLoopback
)

// Path is one observation of the network.
type Path struct {
	Satisfied  bool
	Interfaces []InterfaceType
}

// Uses reports whether typ is among the path's active interfaces.
func (p Path) Uses(typ InterfaceType) bool {
	for _, i := range p.Interfaces {
		if i == typ {
			return true
		}
	}
	return false
}

// Classify picks the highest-priority interface:
// wifi, then cellular, then wired ethernet, then any satisfied path.
func Classify(p Path) ConnectionType {
	switch {
	case p.Uses(InterfaceWiFi):
		return ConnectionWiFi
	case p.Uses(InterfaceCellular):
		return ConnectionCellular
	case p.Uses(InterfaceWiredEthernet):
		return ConnectionEthernet
	case p.Satisfied:
		return ConnectionOther
	default:
		return ConnectionNone
	}
}
