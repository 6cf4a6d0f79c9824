package dataset

import (
	"fmt"

	"neuron-forge/internal/model"
)

// Feature shifts applied to raw measurements so the data is roughly centred.
const (
	WeightShift = 135.0 // pounds
	HeightShift = 66.0  // inches
)

// Labels.
const (
	Male   = 0.0
	Female = 1.0
)

// Sample is one labelled person.
type Sample struct {
	Name     string
	Features []float64
	Label    float64
}

// FromMeasurements shifts raw weight (lb) and height (in) into a Sample.
func FromMeasurements(name string, weight, height, label float64) Sample {
	return Sample{
		Name:     name,
		Features: []float64{weight - WeightShift, height - HeightShift},
		Label:    label,
	}
}

// Default returns the four-person training set.
func Default() []Sample {
	return []Sample{
		FromMeasurements("Alice", 133, 65, Female),
		FromMeasurements("Bob", 160, 72, Male),
		FromMeasurements("Charlie", 152, 70, Male),
		FromMeasurements("Diana", 120, 60, Female),
	}
}

// Validate rejects samples without exactly two features or with a label outside {0, 1}.
func Validate(samples []Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("dataset: %w: no samples", model.ErrInvalidInput)
	}
	for i, s := range samples {
		if len(s.Features) != model.NumFeatures {
			return fmt.Errorf("dataset: sample %d (%s): %w: %d features", i, s.Name, model.ErrInvalidInput, len(s.Features))
		}
		if s.Label != Male && s.Label != Female {
			return fmt.Errorf("dataset: sample %d (%s): %w: label %v", i, s.Name, model.ErrInvalidInput, s.Label)
		}
	}
	return nil
}

// Batch converts samples into a model batch, keeping their order.
func Batch(samples []Sample) model.Batch {
	b := model.Batch{
		Inputs: make([][]float64, len(samples)),
		Labels: make([]float64, len(samples)),
	}
	for i, s := range samples {
		b.Inputs[i] = s.Features
		b.Labels[i] = s.Label
	}
	return b
}
