package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type checkpoint struct {
	W1 *float64 `json:"w1"`
	W2 *float64 `json:"w2"`
	W3 *float64 `json:"w3"`
	W4 *float64 `json:"w4"`
	W5 *float64 `json:"w5"`
	W6 *float64 `json:"w6"`
	B1 *float64 `json:"b1"`
	B2 *float64 `json:"b2"`
	B3 *float64 `json:"b3"`
}

type checkpointField struct {
	key string
	ptr **float64
}

// fields lists the checkpoint keys in Params order.
func (cp *checkpoint) fields() [NumParams]checkpointField {
	return [NumParams]checkpointField{
		W1: {"w1", &cp.W1}, W2: {"w2", &cp.W2}, W3: {"w3", &cp.W3},
		W4: {"w4", &cp.W4}, W5: {"w5", &cp.W5}, W6: {"w6", &cp.W6},
		B1: {"b1", &cp.B1}, B2: {"b2", &cp.B2}, B3: {"b3", &cp.B3},
	}
}

// WriteCheckpoint encodes the parameters as JSON.
func (n *Network) WriteCheckpoint(w io.Writer) error {
	p := n.p
	var cp checkpoint
	for i, f := range cp.fields() {
		*f.ptr = &p[i]
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cp)
}

// RestoreCheckpoint replaces the parameters with those read from r.
// Every one of the nine keys must be present; on error n is unchanged.
func (n *Network) RestoreCheckpoint(r io.Reader) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var cp checkpoint
	if err := dec.Decode(&cp); err != nil {
		return fmt.Errorf("decode checkpoint: %w", err)
	}
	var p Params
	for i, f := range cp.fields() {
		if *f.ptr == nil {
			return fmt.Errorf("decode checkpoint: %w: missing %q", ErrInvalidInput, f.key)
		}
		p[i] = **f.ptr
	}
	n.SetParams(p)
	return nil
}

// ReadCheckpoint decodes a network written by WriteCheckpoint.
func ReadCheckpoint(r io.Reader) (*Network, error) {
	n := &Network{}
	if err := n.RestoreCheckpoint(r); err != nil {
		return nil, err
	}
	return n, nil
}

// SaveCheckpoint writes the network to path.
func SaveCheckpoint(path string, n *Network) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create checkpoint: %w", err)
	}
	if err := n.WriteCheckpoint(f); err != nil {
		f.Close()
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return f.Close()
}

// LoadCheckpoint reads a network from path.
func LoadCheckpoint(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint: %w", err)
	}
	defer f.Close()
	return ReadCheckpoint(f)
}
