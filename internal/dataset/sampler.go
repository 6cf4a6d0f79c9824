package dataset

import (
	"math/rand"
)

// Sampler yields the visiting order for each epoch.
type Sampler struct {
	samples []Sample
	rng     *rand.Rand
}

// NewSampler returns a Sampler over samples. With shuffle unset every epoch
// walks the dataset in order; otherwise each epoch is a fresh permutation
// drawn from seed. Every seed, including 0, is used as given.
func NewSampler(samples []Sample, shuffle bool, seed int64) *Sampler {
	s := &Sampler{samples: append([]Sample(nil), samples...)}
	if shuffle {
		s.rng = rand.New(rand.NewSource(seed))
	}
	return s
}

// Len returns the number of samples per epoch.
func (s *Sampler) Len() int {
	return len(s.samples)
}

// Epoch returns the samples in the order to visit them this epoch.
func (s *Sampler) Epoch() []Sample {
	order := append([]Sample(nil), s.samples...)
	if s.rng != nil {
		s.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}
	return order
}
