// Package dialogue contains the conversational core of FrozenBOT: response
// selection over the classifier output, the bounded-attempt order state
// machine, and the session orchestrator the I/O loop drives. Nothing in this
// package reads or writes the console; every turn takes one input line and
// returns the lines to print.
package dialogue

import "math/rand"

// DefaultThreshold is the confidence the top label must strictly exceed for
// the utterance to count as understood.
const DefaultThreshold = 0.4

// orderLabels are the response-table indices that open the order dialogue.
var orderLabels = map[int]bool{7: true, 8: true, 9: true, 10: true, 15: true}

// msgNotUnderstood is shown when no label clears the threshold.
const msgNotUnderstood = "Perdón, no pude entenderte. Vuelve a consultar"

// Selection is the outcome of selecting a response for one classified
// utterance.
type Selection struct {
	// Understood is false when the top score did not clear the threshold.
	// The remaining fields are only meaningful when it is true, except
	// Response, which then carries the canned apology.
	Understood    bool
	Label         int
	Score         float64
	Response      string
	TriggersOrder bool
}

// Selector maps a probability distribution to a canned response. The random
// source is injected so tests can pin the variant that gets picked.
type Selector struct {
	responses [][]string
	threshold float64
	rng       *rand.Rand
}

// NewSelector builds a Selector over the response table. A nil rng falls
// back to an unseeded source.
func NewSelector(responses [][]string, threshold float64, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Selector{responses: responses, threshold: threshold, rng: rng}
}

// Select takes the classifier distribution, finds the top label (ties break
// to the lowest index), and picks one of its response variants uniformly at
// random. A top score at or below the threshold yields a not-understood
// Selection carrying the apology text.
func (s *Selector) Select(dist []float64) Selection {
	label, score := 0, 0.0
	for i, p := range dist {
		if p > score {
			label, score = i, p
		}
	}

	if score <= s.threshold {
		return Selection{Understood: false, Score: score, Response: msgNotUnderstood}
	}

	choices := s.responses[label]
	return Selection{
		Understood:    true,
		Label:         label,
		Score:         score,
		Response:      choices[s.rng.Intn(len(choices))],
		TriggersOrder: orderLabels[label],
	}
}
