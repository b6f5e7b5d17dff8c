// Package mug provides the 3D side of the studio: a named-node model,
// the textured outer-surface material, and a software preview that
// wraps the printed design around the mug body.
package mug

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// Standard node names looked up by the core.
const (
	NodeOuter  = "outer"
	NodeInner  = "inner"
	NodeHandle = "handle"
)

// Node is one named part of the model. Only the outer surface carries
// the design texture; the other nodes use flat materials.
type Node struct {
	Name     string   `json:"name"`
	Material *Material `json:"-"`

	// Cylinder geometry in model units
	RadiusTop    float64 `json:"radius_top"`
	RadiusBottom float64 `json:"radius_bottom"`
	Height       float64 `json:"height"`
}

// Model is a collection of named nodes.
type Model struct {
	Name  string
	nodes map[string]*Node
}

// NodeByName returns the named node, or nil.
func (m *Model) NodeByName(name string) *Node {
	return m.nodes[name]
}

// OuterMaterial returns the material of the outer surface node.
func (m *Model) OuterMaterial() *Material {
	if n := m.NodeByName(NodeOuter); n != nil {
		return n.Material
	}
	return nil
}

// modelFile is the on-disk model description.
type modelFile struct {
	Name  string  `json:"name"`
	Nodes []*Node `json:"nodes"`
}

// LoadModel reads a model description from disk. Any failure (missing
// file, corrupt JSON, no outer node) falls back to the generated
// placeholder so the preview always has geometry to show.
func LoadModel(path string) *Model {
	m, err := loadModelFile(path)
	if err != nil {
		log.Printf("mug model: %v, using placeholder geometry", err)
		return PlaceholderModel()
	}
	return m
}

func loadModelFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	var file modelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}

	m := &Model{Name: file.Name, nodes: make(map[string]*Node)}
	for _, n := range file.Nodes {
		n.Material = NewMaterial()
		m.nodes[n.Name] = n
	}
	if m.NodeByName(NodeOuter) == nil {
		return nil, fmt.Errorf("model %s: no outer surface node", path)
	}
	return m, nil
}

// PlaceholderModel generates a plain cylinder mug with a handle stub.
// Used when no model asset is available or the asset fails to decode.
func PlaceholderModel() *Model {
	m := &Model{Name: "placeholder", nodes: make(map[string]*Node)}
	m.nodes[NodeOuter] = &Node{
		Name:         NodeOuter,
		Material:     NewMaterial(),
		RadiusTop:    1.0,
		RadiusBottom: 1.0,
		Height:       2.2,
	}
	m.nodes[NodeInner] = &Node{
		Name:         NodeInner,
		Material:     NewMaterial(),
		RadiusTop:    0.94,
		RadiusBottom: 0.94,
		Height:       2.2,
	}
	m.nodes[NodeHandle] = &Node{
		Name:         NodeHandle,
		Material:     NewMaterial(),
		RadiusTop:    0.18,
		RadiusBottom: 0.18,
		Height:       1.2,
	}
	return m
}
