package trainer

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuron-forge/internal/dataset"
	"neuron-forge/internal/model"
)

func collect(out *[]Observation) Observer {
	return ObserverFunc(func(o Observation) error {
		*out = append(*out, o)
		return nil
	})
}

func TestRunReducesLoss(t *testing.T) {
	net := model.New(rand.New(rand.NewSource(1)))
	var seen []Observation
	res, err := Run(context.Background(), RunConfig{
		Epochs:       1000,
		LearningRate: 0.1,
		LogEvery:     10,
		Observers:    []Observer{collect(&seen)},
	}, net, dataset.Default())
	require.NoError(t, err)

	assert.Less(t, res.FinalLoss, res.InitialLoss)
	assert.Equal(t, 1000, res.Epochs)

	require.Len(t, seen, 100)
	for i, o := range seen {
		assert.Equal(t, (i+1)*10, o.Epoch)
		assert.Equal(t, 10, o.Metrics.Epochs)
	}
	assert.Equal(t, res.FinalLoss, seen[len(seen)-1].Loss)

	emily := dataset.FromMeasurements("Emily", 128, 63, dataset.Female)
	frank := dataset.FromMeasurements("Frank", 155, 68, dataset.Male)
	pe, err := net.FeedforwardVec(emily.Features)
	require.NoError(t, err)
	pf, err := net.FeedforwardVec(frank.Features)
	require.NoError(t, err)
	assert.Greater(t, pe, 0.9)
	assert.Less(t, pf, 0.1)
}

func TestRunMatchesManualLoop(t *testing.T) {
	seed := int64(21)
	a := model.New(rand.New(rand.NewSource(seed)))
	b := model.New(rand.New(rand.NewSource(seed)))

	_, err := Run(context.Background(), RunConfig{Epochs: 200, LearningRate: 0.1}, a, dataset.Default())
	require.NoError(t, err)

	for epoch := 0; epoch < 200; epoch++ {
		for _, s := range dataset.Default() {
			b.TrainSample(s.Features[0], s.Features[1], s.Label, 0.1)
		}
	}
	assert.Equal(t, b.Params(), a.Params())
}

func TestObserversDoNotAffectTraining(t *testing.T) {
	a := model.New(rand.New(rand.NewSource(4)))
	b := model.New(rand.New(rand.NewSource(4)))

	var seen []Observation
	_, err := Run(context.Background(), RunConfig{Epochs: 100, LearningRate: 0.1, LogEvery: 1, Observers: []Observer{collect(&seen)}}, a, dataset.Default())
	require.NoError(t, err)
	_, err = Run(context.Background(), RunConfig{Epochs: 100, LearningRate: 0.1, LogEvery: 50}, b, dataset.Default())
	require.NoError(t, err)

	assert.Len(t, seen, 100)
	assert.Equal(t, a.Params(), b.Params())
}

func TestRunShuffleDeterministic(t *testing.T) {
	cfg := RunConfig{Epochs: 100, LearningRate: 0.1, Shuffle: true, Seed: 8}
	a := model.New(rand.New(rand.NewSource(8)))
	b := model.New(rand.New(rand.NewSource(8)))

	_, err := Run(context.Background(), cfg, a, dataset.Default())
	require.NoError(t, err)
	_, err = Run(context.Background(), cfg, b, dataset.Default())
	require.NoError(t, err)
	assert.Equal(t, a.Params(), b.Params())
}

func TestRunRejectsBadInput(t *testing.T) {
	net := model.New(rand.New(rand.NewSource(1)))
	ctx := context.Background()

	_, err := Run(ctx, RunConfig{Epochs: 0, LearningRate: 0.1}, net, dataset.Default())
	assert.Error(t, err)

	_, err = Run(ctx, RunConfig{Epochs: 10, LearningRate: 0}, net, dataset.Default())
	assert.Error(t, err)

	bad := []dataset.Sample{{Name: "odd", Features: []float64{1, 2, 3}, Label: 1}}
	_, err = Run(ctx, RunConfig{Epochs: 10, LearningRate: 0.1}, net, bad)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestRunStopsOnCancel(t *testing.T) {
	net := model.New(rand.New(rand.NewSource(1)))
	ctx, cancel := context.WithCancel(context.Background())

	var seen []Observation
	obs := ObserverFunc(func(o Observation) error {
		seen = append(seen, o)
		if o.Epoch == 20 {
			cancel()
		}
		return nil
	})
	res, err := Run(ctx, RunConfig{Epochs: 1000, LearningRate: 0.1, Observers: []Observer{obs}}, net, dataset.Default())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 20, res.Epochs)
	assert.Len(t, seen, 2)
}

func TestRunObserverError(t *testing.T) {
	net := model.New(rand.New(rand.NewSource(1)))
	boom := errors.New("boom")
	_, err := Run(context.Background(), RunConfig{
		Epochs:       30,
		LearningRate: 0.1,
		Observers:    []Observer{ObserverFunc(func(Observation) error { return boom })},
	}, net, dataset.Default())
	assert.ErrorIs(t, err, boom)
}

func TestLogObserver(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := log.New(buf, "", 0)
	require.NoError(t, LogObserver(logger).Observe(Observation{Epoch: 10, Loss: 0.25}))
	assert.True(t, strings.HasPrefix(buf.String(), "epoch=10 loss=0.2500"), buf.String())
}
