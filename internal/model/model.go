package model

import (
	"errors"
	"fmt"
)

// ErrInvalidInput reports a sample or batch with the wrong shape.
var ErrInvalidInput = errors.New("model: invalid input")

// NumFeatures is the fixed input width of the network.
const NumFeatures = 2

// Batch is an ordered run of samples. Training walks it one sample at a time.
type Batch struct {
	Inputs [][]float64
	Labels []float64
}

// Model defines the training functionality required by the trainer.
type Model interface {
	TrainStep(batch Batch, lr float64) error
	Loss(batch Batch) (float64, error)
}

// Validate checks that every input carries exactly NumFeatures values and has a label.
func (b Batch) Validate() error {
	if len(b.Inputs) != len(b.Labels) {
		return fmt.Errorf("%w: %d inputs for %d labels", ErrInvalidInput, len(b.Inputs), len(b.Labels))
	}
	for i, input := range b.Inputs {
		if len(input) != NumFeatures {
			return fmt.Errorf("%w: input %d has %d features, want %d", ErrInvalidInput, i, len(input), NumFeatures)
		}
	}
	return nil
}
