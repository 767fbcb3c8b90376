package model

import "fmt"

// Connection is a cable linking two nodes. The from/to labels follow the
// drawing direction; electrically the edge is undirected. LengthM is the
// one-way run; the return conductor is accounted for by the calculators.
type Connection struct {
	ID         string  `json:"id"`
	FromNodeID string  `json:"from_node_id"`
	ToNodeID   string  `json:"to_node_id"`
	SectionMm2 float64 `json:"section_mm2"`
	LengthM    float64 `json:"length_m"`
	CableType  string  `json:"cable_type,omitempty"`
}

// Validate checks the connection's physical attributes.
func (c Connection) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("connection id is required")
	}
	if c.FromNodeID == "" || c.ToNodeID == "" {
		return fmt.Errorf("connection %s: both endpoints are required", c.ID)
	}
	if c.SectionMm2 <= 0 {
		return fmt.Errorf("connection %s: section must be positive", c.ID)
	}
	if c.LengthM < 0 {
		return fmt.Errorf("connection %s: length cannot be negative", c.ID)
	}
	return nil
}

// NodeIndex builds an id lookup over a node slice. Later duplicates win,
// matching the editor's last-write semantics.
func NodeIndex(nodes []Node) map[string]*Node {
	idx := make(map[string]*Node, len(nodes))
	for i := range nodes {
		idx[nodes[i].ID] = &nodes[i]
	}
	return idx
}
