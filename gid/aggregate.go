package gid

import (
	"encoding/json"
	"fmt"
	"os"
)

// Aggregate is the pre-sampled JSON result artifact: top-level keys are
// "TIME" plus "NODE_<id>" entries mapping variable names ("VELOCITY_Y", ...)
// to value sequences sampled at the solver's output cadence.
type Aggregate struct {
	raw map[string]json.RawMessage
}

// ReadAggregate decodes an aggregate result document.
func ReadAggregate(data []byte) (*Aggregate, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return &Aggregate{raw: raw}, nil
}

// ReadAggregateFile reads and decodes the aggregate artifact at path,
// closing the file whether or not decoding succeeds.
func ReadAggregateFile(path string) (*Aggregate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gid: %w", err)
	}
	return ReadAggregate(data)
}

// Node returns the variable table recorded for a node.
func (a *Aggregate) Node(id int) (map[string][]float64, error) {
	key := fmt.Sprintf("NODE_%d", id)
	raw, ok := a.raw[key]
	if !ok {
		return nil, fmt.Errorf("%w: no %s entry", ErrFormat, key)
	}
	var vars map[string][]float64
	if err := json.Unmarshal(raw, &vars); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, key, err)
	}
	return vars, nil
}

// Samples returns the values of one node variable at the given sample
// indices, in order.
func (a *Aggregate) Samples(node int, variable string, indices []int) ([]float64, error) {
	vars, err := a.Node(node)
	if err != nil {
		return nil, err
	}
	values, ok := vars[variable]
	if !ok {
		return nil, fmt.Errorf("%w: NODE_%d has no %s", ErrFormat, node, variable)
	}
	out := make([]float64, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(values) {
			return nil, fmt.Errorf("%w: NODE_%d %s: index %d out of %d samples",
				ErrFormat, node, variable, idx, len(values))
		}
		out[i] = values[idx]
	}
	return out, nil
}

// WriteAggregateFile writes an aggregate document with the output times and
// one node's variable table.
func WriteAggregateFile(path string, times []float64, node int, vars map[string][]float64) error {
	doc := map[string]any{
		"TIME":                        times,
		fmt.Sprintf("NODE_%d", node): vars,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("gid: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("gid: %w", err)
	}
	return nil
}
