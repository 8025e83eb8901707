package graphgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/portnum/sim"
)

// A Description is the YAML form of a graph.
//
//	vertices: 3
//	edges: [[0, 1], [1, 2]]
//	white: [0, 2]
//
// White lists the white vertices of a bipartite graph and may be omitted.
type Description struct {
	Vertices int     `yaml:"vertices"`
	Edges    [][]int `yaml:"edges,flow"`
	White    []int   `yaml:"white,omitempty,flow"`
}

// Describe creates the description of a graph.
func Describe(numVertices int, edges []sim.Edge, white []sim.Vertex) Description {
	d := Description{
		Vertices: numVertices,
		Edges:    make([][]int, len(edges)),
	}

	for i, e := range edges {
		d.Edges[i] = []int{int(e.U), int(e.V)}
	}

	for _, v := range white {
		d.White = append(d.White, int(v))
	}

	return d
}

// Parse reads a description from YAML.
func Parse(data []byte) (Description, error) {
	var d Description

	err := yaml.Unmarshal(data, &d)
	if err != nil {
		return Description{}, fmt.Errorf("parsing graph description: %w", err)
	}

	err = d.validate()
	if err != nil {
		return Description{}, err
	}

	return d, nil
}

// LoadFile reads a description from a YAML file.
func LoadFile(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, err
	}

	d, err := Parse(data)
	if err != nil {
		return Description{}, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}

// Marshal writes the description as YAML.
func (d Description) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// SaveFile writes the description to a YAML file.
func (d Description) SaveFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Graph returns the vertices and the edges of the described graph.
func (d Description) Graph() ([]sim.Vertex, []sim.Edge) {
	edges := make([]sim.Edge, len(d.Edges))
	for i, e := range d.Edges {
		edges[i] = sim.Edge{U: sim.Vertex(e[0]), V: sim.Vertex(e[1])}
	}

	return sequence(0, d.Vertices), edges
}

// WhiteVertices returns the vertices listed as white.
func (d Description) WhiteVertices() []sim.Vertex {
	white := make([]sim.Vertex, len(d.White))
	for i, v := range d.White {
		white[i] = sim.Vertex(v)
	}

	return white
}

func (d Description) validate() error {
	if d.Vertices < 0 {
		return fmt.Errorf("vertices=%d: %w", d.Vertices, ErrInvalidDescription)
	}

	for _, e := range d.Edges {
		if len(e) != 2 {
			return fmt.Errorf("edge %v does not have two ends: %w",
				e, ErrInvalidDescription)
		}

		for _, v := range e {
			if v < 0 || v >= d.Vertices {
				return fmt.Errorf("edge %v refers to vertex %d of %d: %w",
					e, v, d.Vertices, ErrInvalidDescription)
			}
		}
	}

	for _, v := range d.White {
		if v < 0 || v >= d.Vertices {
			return fmt.Errorf("white vertex %d of %d: %w",
				v, d.Vertices, ErrInvalidDescription)
		}
	}

	return nil
}
