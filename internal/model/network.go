package model

import (
	"fmt"
	"math"
)

// Classifier produces a probability distribution over the intent labels for
// one bag-of-words feature vector. Implementations must be safe to reuse
// across calls; the session loop shares one instance for the whole process.
type Classifier interface {
	Classify(vector []float64) ([]float64, error)
}

// Layer is one dense layer of the trained network. Weights is indexed
// [output][input].
type Layer struct {
	Activation string      `json:"activation"`
	Weights    [][]float64 `json:"weights"`
	Biases     []float64   `json:"biases"`
}

// Network is the trained feedforward intent model deserialized from the
// weights artifact. It implements Classifier.
type Network struct {
	Layers []Layer `json:"layers"`
}

// Supported layer activations.
const (
	activationReLU    = "relu"
	activationSoftmax = "softmax"
	activationLinear  = "linear"
)

// InputSize returns the feature-vector length the network expects.
func (n *Network) InputSize() int {
	if len(n.Layers) == 0 || len(n.Layers[0].Weights) == 0 {
		return 0
	}
	return len(n.Layers[0].Weights[0])
}

// OutputSize returns the number of labels the network emits.
func (n *Network) OutputSize() int {
	if len(n.Layers) == 0 {
		return 0
	}
	return len(n.Layers[len(n.Layers)-1].Weights)
}

// Classify runs a forward pass. The result has OutputSize entries; with a
// softmax final layer the entries are in [0,1] and sum to ~1.
func (n *Network) Classify(vector []float64) ([]float64, error) {
	if len(n.Layers) == 0 {
		return nil, fmt.Errorf("network has no layers")
	}
	out := vector
	for i := range n.Layers {
		var err error
		out, err = n.Layers[i].forward(out)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return out, nil
}

func (l *Layer) forward(in []float64) ([]float64, error) {
	out := make([]float64, len(l.Weights))
	for j, row := range l.Weights {
		if len(row) != len(in) {
			return nil, fmt.Errorf("weight row %d has %d inputs, got vector of %d", j, len(row), len(in))
		}
		sum := l.Biases[j]
		for i, w := range row {
			sum += w * in[i]
		}
		out[j] = sum
	}

	switch l.Activation {
	case activationReLU:
		for j, v := range out {
			if v < 0 {
				out[j] = 0
			}
		}
	case activationSoftmax:
		softmax(out)
	case activationLinear, "":
	default:
		return nil, fmt.Errorf("unknown activation %q", l.Activation)
	}
	return out, nil
}

// softmax normalizes in place, shifting by the max for numeric stability.
func softmax(v []float64) {
	max := math.Inf(-1)
	for _, x := range v {
		if x > max {
			max = x
		}
	}
	var sum float64
	for i, x := range v {
		v[i] = math.Exp(x - max)
		sum += v[i]
	}
	for i := range v {
		v[i] /= sum
	}
}

// validate checks the structural invariants needed before inference: every
// layer has weights with a bias per output row, consecutive layers agree on
// dimensions, and activations are known.
func (n *Network) validate() error {
	if len(n.Layers) == 0 {
		return fmt.Errorf("no layers")
	}
	prevOut := -1
	for i, l := range n.Layers {
		if len(l.Weights) == 0 {
			return fmt.Errorf("layer %d: no weights", i)
		}
		if len(l.Biases) != len(l.Weights) {
			return fmt.Errorf("layer %d: %d biases for %d outputs", i, len(l.Biases), len(l.Weights))
		}
		width := len(l.Weights[0])
		for j, row := range l.Weights {
			if len(row) != width {
				return fmt.Errorf("layer %d: ragged weight row %d", i, j)
			}
		}
		if prevOut >= 0 && width != prevOut {
			return fmt.Errorf("layer %d: input size %d does not match previous output %d", i, width, prevOut)
		}
		prevOut = len(l.Weights)
		switch l.Activation {
		case activationReLU, activationSoftmax, activationLinear, "":
		default:
			return fmt.Errorf("layer %d: unknown activation %q", i, l.Activation)
		}
	}
	return nil
}
