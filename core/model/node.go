package model

import "fmt"

// NodeType identifies the kind of electrical component a node represents.
type NodeType int

const (
	NodeConsumer NodeType = iota
	NodeBattery
	NodeSolar
	NodeAlternator
	NodeCharger
	NodeInverter
	NodeBus
	NodeFuse
	NodeSwitch
)

// String returns a human-readable representation of the node type.
func (t NodeType) String() string {
	switch t {
	case NodeConsumer:
		return "consumer"
	case NodeBattery:
		return "battery"
	case NodeSolar:
		return "solar"
	case NodeAlternator:
		return "alternator"
	case NodeCharger:
		return "charger"
	case NodeInverter:
		return "inverter"
	case NodeBus:
		return "bus"
	case NodeFuse:
		return "fuse"
	case NodeSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// ParseNodeType converts the wire representation of a node type.
func ParseNodeType(s string) (NodeType, error) {
	switch s {
	case "consumer":
		return NodeConsumer, nil
	case "battery":
		return NodeBattery, nil
	case "solar":
		return NodeSolar, nil
	case "alternator":
		return NodeAlternator, nil
	case "charger":
		return NodeCharger, nil
	case "inverter":
		return NodeInverter, nil
	case "bus":
		return NodeBus, nil
	case "fuse":
		return NodeFuse, nil
	case "switch":
		return NodeSwitch, nil
	default:
		return 0, fmt.Errorf("unknown node type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so node types serialize as
// their tag name in JSON documents.
func (t NodeType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *NodeType) UnmarshalText(b []byte) error {
	v, err := ParseNodeType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// IsSource reports whether the type can supply energy to the network.
func (t NodeType) IsSource() bool {
	switch t {
	case NodeBattery, NodeSolar, NodeAlternator, NodeCharger:
		return true
	}
	return false
}

// ConnectionOptional reports whether a node of this type may legitimately
// sit in the diagram without any cable attached.
func (t NodeType) ConnectionOptional() bool {
	switch t {
	case NodeBus, NodeSwitch, NodeFuse:
		return true
	}
	return false
}

// Chemistry identifies a battery chemistry.
type Chemistry string

const (
	ChemistryLead    Chemistry = "lead"
	ChemistryAGM     Chemistry = "agm"
	ChemistryGel     Chemistry = "gel"
	ChemistryLiFePO4 Chemistry = "lifepo4"
	ChemistryLithium Chemistry = "lithium"
)

// BankConfiguration describes how the cells of a battery node are wired.
type BankConfiguration string

const (
	// BankParallel multiplies capacity by quantity.
	BankParallel BankConfiguration = "parallel"
	// BankSeries raises voltage; capacity stays nominal.
	BankSeries BankConfiguration = "series"
)

// ConsumerAttrs carries the load profile of a consumer node. PowerW is
// authoritative when both PowerW and CurrentA are set.
type ConsumerAttrs struct {
	PowerW     float64 `json:"power_w,omitempty"`
	CurrentA   float64 `json:"current_a,omitempty"`
	DailyHours float64 `json:"daily_hours"`
	DutyCycle  float64 `json:"duty_cycle"`
}

// BatteryAttrs describes a battery bank.
type BatteryAttrs struct {
	CapacityAh    float64           `json:"capacity_ah"`
	Chemistry     Chemistry         `json:"chemistry"`
	Quantity      int               `json:"quantity,omitempty"`
	Configuration BankConfiguration `json:"configuration,omitempty"`
}

// Count returns the number of units in the bank, defaulting to one.
func (b BatteryAttrs) Count() int {
	if b.Quantity < 1 {
		return 1
	}
	return b.Quantity
}

// Wiring returns the bank configuration, defaulting to parallel.
func (b BatteryAttrs) Wiring() BankConfiguration {
	if b.Configuration == BankSeries {
		return BankSeries
	}
	return BankParallel
}

// SolarAttrs describes one or more identical solar panels.
type SolarAttrs struct {
	MaxPowerW  float64 `json:"max_power_w"`
	Efficiency float64 `json:"efficiency,omitempty"`
	Quantity   int     `json:"quantity,omitempty"`
}

// Count returns the number of panels, defaulting to one.
func (s SolarAttrs) Count() int {
	if s.Quantity < 1 {
		return 1
	}
	return s.Quantity
}

// EffectiveEfficiency returns the derating factor, defaulting to 0.7.
func (s SolarAttrs) EffectiveEfficiency() float64 {
	if s.Efficiency <= 0 {
		return 0.7
	}
	return s.Efficiency
}

// AlternatorAttrs describes an engine-driven alternator.
type AlternatorAttrs struct {
	MaxPowerW         float64 `json:"max_power_w"`
	Efficiency        float64 `json:"efficiency,omitempty"`
	EngineHoursPerDay float64 `json:"engine_hours_per_day"`
}

// EffectiveEfficiency returns the derating factor, defaulting to 0.85.
func (a AlternatorAttrs) EffectiveEfficiency() float64 {
	if a.Efficiency <= 0 {
		return 0.85
	}
	return a.Efficiency
}

// ChargerAttrs describes a shore-power battery charger.
type ChargerAttrs struct {
	MaxPowerW float64 `json:"max_power_w"`
}

// InverterAttrs carries the rating of a DC/AC inverter. Topology only.
type InverterAttrs struct {
	MaxPowerW float64 `json:"max_power_w,omitempty"`
}

// FuseAttrs carries the rating of an inline fuse node. Topology only.
type FuseAttrs struct {
	RatingA float64 `json:"rating_a,omitempty"`
}

// SwitchAttrs carries the rating of a battery switch. Topology only.
type SwitchAttrs struct {
	RatedCurrentA float64 `json:"rated_current_a,omitempty"`
}

// Node is a typed component of the electrical network. Exactly the
// attribute struct matching Type is set; the others stay nil, so matching
// on Type narrows directly to the variant's fields.
type Node struct {
	ID      string   `json:"id"`
	Type    NodeType `json:"type"`
	Label   string   `json:"label,omitempty"`
	Voltage float64  `json:"voltage"`

	Consumer   *ConsumerAttrs   `json:"consumer,omitempty"`
	Battery    *BatteryAttrs    `json:"battery,omitempty"`
	Solar      *SolarAttrs      `json:"solar,omitempty"`
	Alternator *AlternatorAttrs `json:"alternator,omitempty"`
	Charger    *ChargerAttrs    `json:"charger,omitempty"`
	Inverter   *InverterAttrs   `json:"inverter,omitempty"`
	Fuse       *FuseAttrs       `json:"fuse,omitempty"`
	Switch     *SwitchAttrs     `json:"switch,omitempty"`
}

// Validate checks that the node is well formed: a supported nominal
// voltage and the attribute variant matching its type.
func (n Node) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("node id is required")
	}
	switch n.Voltage {
	case 12, 24, 48:
	default:
		return fmt.Errorf("node %s: unsupported voltage %v", n.ID, n.Voltage)
	}
	switch n.Type {
	case NodeConsumer:
		if n.Consumer == nil {
			return fmt.Errorf("node %s: missing consumer attributes", n.ID)
		}
		if n.Consumer.PowerW == 0 && n.Consumer.CurrentA == 0 {
			return fmt.Errorf("node %s: consumer needs power_w or current_a", n.ID)
		}
		if n.Consumer.DailyHours < 0 || n.Consumer.DailyHours > 24 {
			return fmt.Errorf("node %s: daily_hours out of range", n.ID)
		}
		if n.Consumer.DutyCycle < 0 || n.Consumer.DutyCycle > 1 {
			return fmt.Errorf("node %s: duty_cycle out of range", n.ID)
		}
	case NodeBattery:
		if n.Battery == nil {
			return fmt.Errorf("node %s: missing battery attributes", n.ID)
		}
		if n.Battery.CapacityAh <= 0 {
			return fmt.Errorf("node %s: battery capacity must be positive", n.ID)
		}
		switch n.Battery.Chemistry {
		case ChemistryLead, ChemistryAGM, ChemistryGel, ChemistryLiFePO4, ChemistryLithium:
		default:
			return fmt.Errorf("node %s: unknown chemistry %q", n.ID, n.Battery.Chemistry)
		}
	case NodeSolar:
		if n.Solar == nil || n.Solar.MaxPowerW <= 0 {
			return fmt.Errorf("node %s: solar panel needs a positive max_power_w", n.ID)
		}
	case NodeAlternator:
		if n.Alternator == nil || n.Alternator.MaxPowerW <= 0 {
			return fmt.Errorf("node %s: alternator needs a positive max_power_w", n.ID)
		}
	case NodeCharger:
		if n.Charger == nil || n.Charger.MaxPowerW <= 0 {
			return fmt.Errorf("node %s: charger needs a positive max_power_w", n.ID)
		}
	case NodeInverter, NodeBus, NodeFuse, NodeSwitch:
		// Topology-only nodes carry no mandatory attributes.
	default:
		return fmt.Errorf("node %s: unknown type", n.ID)
	}
	return nil
}
