package model

import (
	"math/rand"
)

// Parameter indices into Params.
const (
	W1 = iota
	W2
	W3
	W4
	W5
	W6
	B1
	B2
	B3
	NumParams
)

// Params holds the nine trainable values in the order w1..w6, b1..b3.
type Params [NumParams]float64

// Network is a 2-2-1 feedforward network with sigmoid activations.
//
// Hidden unit h1 reads (x1, x2) through w1, w2, b1 and h2 through w3, w4, b2.
// The output o1 reads (h1, h2) through w5, w6, b3.
type Network struct {
	p Params
}

// activations caches one forward pass for reuse by backpropagation.
type activations struct {
	sumH1, h1 float64
	sumH2, h2 float64
	sumO1, o1 float64
}

// New draws every parameter from a standard normal distribution.
func New(rng *rand.Rand) *Network {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	var p Params
	for i := range p {
		p[i] = rng.NormFloat64()
	}
	return &Network{p: p}
}

// NewFromParams builds a network with fixed parameters.
func NewFromParams(p Params) *Network {
	return &Network{p: p}
}

// Params returns a copy of the current parameters.
func (n *Network) Params() Params {
	return n.p
}

// SetParams replaces every parameter.
func (n *Network) SetParams(p Params) {
	n.p = p
}

func (n *Network) forward(x1, x2 float64) activations {
	var a activations
	a.sumH1 = n.p[W1]*x1 + n.p[W2]*x2 + n.p[B1]
	a.h1 = Sigmoid(a.sumH1)
	a.sumH2 = n.p[W3]*x1 + n.p[W4]*x2 + n.p[B2]
	a.h2 = Sigmoid(a.sumH2)
	a.sumO1 = n.p[W5]*a.h1 + n.p[W6]*a.h2 + n.p[B3]
	a.o1 = Sigmoid(a.sumO1)
	return a
}

// Feedforward returns the prediction in (0, 1) for the feature pair.
func (n *Network) Feedforward(x1, x2 float64) float64 {
	return n.forward(x1, x2).o1
}

// FeedforwardVec is Feedforward for a feature slice, which must hold exactly two values.
func (n *Network) FeedforwardVec(x []float64) (float64, error) {
	if len(x) != NumFeatures {
		return 0, ErrInvalidInput
	}
	return n.Feedforward(x[0], x[1]), nil
}

// Gradients returns dL/dparam for the single-sample loss L = (yTrue - yPred)^2.
func (n *Network) Gradients(x1, x2, yTrue float64) Params {
	a := n.forward(x1, x2)

	dLdYpred := -2 * (yTrue - a.o1)

	// Output unit.
	dO1 := DerivSigmoid(a.sumO1)
	dYpredDW5 := a.h1 * dO1
	dYpredDW6 := a.h2 * dO1
	dYpredDB3 := dO1
	dYpredDH1 := n.p[W5] * dO1
	dYpredDH2 := n.p[W6] * dO1

	// Hidden unit h1.
	dH1 := DerivSigmoid(a.sumH1)
	dH1DW1 := x1 * dH1
	dH1DW2 := x2 * dH1
	dH1DB1 := dH1

	// Hidden unit h2.
	dH2 := DerivSigmoid(a.sumH2)
	dH2DW3 := x1 * dH2
	dH2DW4 := x2 * dH2
	dH2DB2 := dH2

	var g Params
	g[W1] = dLdYpred * dYpredDH1 * dH1DW1
	g[W2] = dLdYpred * dYpredDH1 * dH1DW2
	g[B1] = dLdYpred * dYpredDH1 * dH1DB1
	g[W3] = dLdYpred * dYpredDH2 * dH2DW3
	g[W4] = dLdYpred * dYpredDH2 * dH2DW4
	g[B2] = dLdYpred * dYpredDH2 * dH2DB2
	g[W5] = dLdYpred * dYpredDW5
	g[W6] = dLdYpred * dYpredDW6
	g[B3] = dLdYpred * dYpredDB3
	return g
}

// TrainSample applies one SGD update from a single sample.
// All gradients come from the same forward pass before any parameter moves.
func (n *Network) TrainSample(x1, x2, yTrue, lr float64) {
	g := n.Gradients(x1, x2, yTrue)
	for i := range n.p {
		n.p[i] -= lr * g[i]
	}
}

// TrainStep runs TrainSample over the batch in order.
func (n *Network) TrainStep(batch Batch, lr float64) error {
	if err := batch.Validate(); err != nil {
		return err
	}
	for i, input := range batch.Inputs {
		n.TrainSample(input[0], input[1], batch.Labels[i], lr)
	}
	return nil
}

// Loss evaluates the mean squared error over the batch with the current parameters.
func (n *Network) Loss(batch Batch) (float64, error) {
	if err := batch.Validate(); err != nil {
		return 0, err
	}
	preds := make([]float64, len(batch.Inputs))
	for i, input := range batch.Inputs {
		preds[i] = n.Feedforward(input[0], input[1])
	}
	return MSELoss(batch.Labels, preds)
}
