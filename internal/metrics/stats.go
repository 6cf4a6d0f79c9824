package metrics

import "time"

// Window accumulates timing stats across epochs between two log lines.
type Window struct {
	samples int
	compute time.Duration
	epochs  int
}

// Record adds one epoch's measurement to the window.
func (w *Window) Record(samples int, computeTime time.Duration) {
	w.samples += samples
	w.compute += computeTime
	w.epochs++
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Epochs: w.epochs}
	if w.compute > 0 {
		snap.SamplesPerSec = float64(w.samples) / w.compute.Seconds()
	}
	if w.epochs > 0 {
		snap.AvgEpochMS = (w.compute.Seconds() * 1000) / float64(w.epochs)
	}

	w.samples = 0
	w.compute = 0
	w.epochs = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Epochs        int
	SamplesPerSec float64
	AvgEpochMS    float64
}
