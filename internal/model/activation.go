package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sigmoid computes f(x) = 1 / (1 + e^-x).
//
// Large negative inputs saturate to 0 and large positive inputs to 1; no
// clamping is applied.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// DerivSigmoid computes f'(x) = f(x) * (1 - f(x)).
func DerivSigmoid(x float64) float64 {
	fx := Sigmoid(x)
	return fx * (1 - fx)
}

// MSELoss returns mean((yTrue - yPred)^2).
func MSELoss(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, fmt.Errorf("%w: %d targets for %d predictions", ErrInvalidInput, len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return 0, fmt.Errorf("%w: empty batch", ErrInvalidInput)
	}
	diff := make([]float64, len(yTrue))
	floats.SubTo(diff, yTrue, yPred)
	floats.Mul(diff, diff)
	return stat.Mean(diff, nil), nil
}
