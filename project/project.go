// Package project reads and writes the JSON project document exchanged
// with the editor: the node and connection arrays plus the electrical
// settings of the installation.
package project

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/kerguelen/boatgrid/core/engine"
	"github.com/kerguelen/boatgrid/core/model"
)

// Project is a full network document.
type Project struct {
	Name        string             `json:"name"`
	Settings    engine.Config      `json:"settings"`
	Nodes       []model.Node       `json:"nodes"`
	Connections []model.Connection `json:"connections"`
}

// Decode reads a project document from r, fills in missing ids and
// validates every node and connection. The settings get their defaults
// applied.
func Decode(r io.Reader) (*Project, error) {
	var p Project
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	p.Settings.SetDefaults()
	if err := p.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("project settings: %w", err)
	}
	// The editor normally assigns ids; be lenient with hand-written files.
	for i := range p.Nodes {
		if p.Nodes[i].ID == "" {
			p.Nodes[i].ID = uuid.NewString()
		}
		if err := p.Nodes[i].Validate(); err != nil {
			return nil, err
		}
	}
	for i := range p.Connections {
		if p.Connections[i].ID == "" {
			p.Connections[i].ID = uuid.NewString()
		}
		if err := p.Connections[i].Validate(); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// Load reads a project document from a file.
func Load(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	defer f.Close()
	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Encode writes the project document to w as indented JSON.
func (p *Project) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
