package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MZecchetto/wavecheck/ana"
	"github.com/MZecchetto/wavecheck/column"
	"github.com/MZecchetto/wavecheck/sim"
)

// Scenario describes one validation run.  It is loaded fresh per invocation;
// nothing is shared between runs.
type Scenario struct {
	// Material holds the elastic constants of the column.
	Material struct {
		E   float64 `yaml:"e"`
		Nu  float64 `yaml:"nu"`
		Rho float64 `yaml:"rho"`
	} `yaml:"material"`

	// Load is the distributed load magnitude at the free end.
	Load float64 `yaml:"load"`
	// Height is the column extent along the propagation direction.
	Height float64 `yaml:"height"`
	// Direction is the propagation axis: 0=x, 1=y, 2=z.
	Direction int `yaml:"direction"`
	// Places is the decimal-place tolerance of all comparisons.
	Places int `yaml:"places"`
	// Probes are the node ids checked by the arrival validation.
	Probes []int `yaml:"probes"`
	// Model names the column model; artifacts are written next to it.
	Model string `yaml:"model"`

	// Engine configures the built-in closed-form engine.
	Engine struct {
		Nodes int     `yaml:"nodes"`
		Steps int     `yaml:"steps"`
		Dt    float64 `yaml:"dt"`
		Dir   string  `yaml:"dir"`
	} `yaml:"engine"`

	// Reflection configures the rigid-base check.
	Reflection struct {
		Node     int    `yaml:"node"`
		Variable string `yaml:"variable"`
		Indices  []int  `yaml:"indices"`
	} `yaml:"reflection"`
}

// loadScenario reads and validates a scenario file.
func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading scenario: %w", err)
	}
	sc := &Scenario{}
	sc.Direction = 1
	sc.Places = 2
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if sc.Model == "" {
		sc.Model = "column"
	}
	if sc.Direction < 0 || sc.Direction > 2 {
		return nil, fmt.Errorf("scenario %s: %w: direction %d out of range [0, 2]",
			path, column.ErrConfiguration, sc.Direction)
	}
	if _, err := sc.column(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// column derives the validated analytical reference for this scenario.
func (sc *Scenario) column() (*ana.Column, error) {
	mat := ana.Material{E: sc.Material.E, Nu: sc.Material.Nu, Rho: sc.Material.Rho}
	return ana.NewColumn(mat, sc.Load, sc.Height)
}

// engine builds the closed-form engine for the requested base boundary.
func (sc *Scenario) engine(col *ana.Column, boundary sim.BoundaryKind) *sim.ColumnEngine {
	return &sim.ColumnEngine{
		Column:   col,
		Boundary: boundary,
		Nodes:    sc.Engine.Nodes,
		Axis:     sc.Direction,
		Steps:    sc.Engine.Steps,
		Dt:       sc.Engine.Dt,
		AggNode:  sc.reflectionNode(),
		Dir:      sc.Engine.Dir,
	}
}

// reflectionNode defaults the aggregate probe to the loaded-end node.
func (sc *Scenario) reflectionNode() int {
	if sc.Reflection.Node != 0 {
		return sc.Reflection.Node
	}
	if sc.Engine.Nodes != 0 {
		return sc.Engine.Nodes
	}
	return 21
}

// reflectionVariable defaults the aggregate variable from the propagation
// direction when unset.
func (sc *Scenario) reflectionVariable() string {
	if sc.Reflection.Variable != "" {
		return sc.Reflection.Variable
	}
	return "VELOCITY_" + string("XYZ"[sc.Direction])
}
