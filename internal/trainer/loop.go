package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"neuron-forge/internal/dataset"
	"neuron-forge/internal/metrics"
	"neuron-forge/internal/model"
)

const defaultLogEvery = 10

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Epochs       int
	LearningRate float64
	LogEvery     int
	Shuffle      bool
	Seed         int64
	Observers    []Observer
}

// Observation is the full-dataset loss measured after an epoch.
type Observation struct {
	Epoch   int
	Loss    float64
	Metrics metrics.Snapshot
}

// Observer receives observations every LogEvery epochs. Observers never
// influence the parameters; a returned error aborts the run.
type Observer interface {
	Observe(Observation) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Observation) error

// Observe calls f(o).
func (f ObserverFunc) Observe(o Observation) error {
	return f(o)
}

// LogObserver writes one key=value line per observation.
func LogObserver(logger *log.Logger) Observer {
	if logger == nil {
		logger = log.Default()
	}
	return ObserverFunc(func(o Observation) error {
		logger.Printf("epoch=%d loss=%.4f samples_per_sec=%.1f epoch_ms=%.4f",
			o.Epoch,
			o.Loss,
			o.Metrics.SamplesPerSec,
			o.Metrics.AvgEpochMS,
		)
		return nil
	})
}

// Result summarises a finished run.
type Result struct {
	InitialLoss float64
	FinalLoss   float64
	Epochs      int
	Elapsed     time.Duration
}

// Run trains mdl with per-sample SGD for cfg.Epochs passes over samples.
//
// The context is only checked between epochs, so every completed epoch
// performs exactly the same sequence of updates as an uninterrupted run.
func Run(ctx context.Context, cfg RunConfig, mdl model.Model, samples []dataset.Sample) (Result, error) {
	if cfg.Epochs <= 0 {
		return Result{}, errors.New("trainer: epochs must be > 0")
	}
	if cfg.LearningRate <= 0 {
		return Result{}, errors.New("trainer: learning rate must be > 0")
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = defaultLogEvery
	}
	if err := dataset.Validate(samples); err != nil {
		return Result{}, err
	}

	full := dataset.Batch(samples)
	initial, err := mdl.Loss(full)
	if err != nil {
		return Result{}, fmt.Errorf("trainer: initial loss: %w", err)
	}

	sampler := dataset.NewSampler(samples, cfg.Shuffle, cfg.Seed)
	var window metrics.Window
	res := Result{InitialLoss: initial}
	start := time.Now()

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}

		startCompute := time.Now()
		if err := mdl.TrainStep(dataset.Batch(sampler.Epoch()), cfg.LearningRate); err != nil {
			return res, fmt.Errorf("trainer: epoch %d: %w", epoch, err)
		}
		window.Record(sampler.Len(), time.Since(startCompute))
		res.Epochs = epoch

		if epoch%cfg.LogEvery == 0 {
			loss, err := mdl.Loss(full)
			if err != nil {
				return res, fmt.Errorf("trainer: epoch %d loss: %w", epoch, err)
			}
			obs := Observation{Epoch: epoch, Loss: loss, Metrics: window.Snapshot()}
			for _, o := range cfg.Observers {
				if err := o.Observe(obs); err != nil {
					return res, fmt.Errorf("trainer: observe epoch %d: %w", epoch, err)
				}
			}
		}
	}

	res.FinalLoss, err = mdl.Loss(full)
	if err != nil {
		return res, fmt.Errorf("trainer: final loss: %w", err)
	}
	res.Elapsed = time.Since(start)
	return res, nil
}
