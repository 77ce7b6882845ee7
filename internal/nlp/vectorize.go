package nlp

// Vocabulary is the ordered word list fixed when the model was trained. Its
// order defines the feature indices of the bag-of-words vector, so it must
// never be reordered after load.
type Vocabulary []string

// Vectorize encodes a lemma sequence as a bag-of-words vector over vocab:
// 1 if the vocabulary entry occurs in the lemma set, 0 otherwise. Frequency
// is ignored. The output always has length len(vocab); an empty lemma
// sequence yields the zero vector.
func Vectorize(lemmas []string, vocab Vocabulary) []float64 {
	present := make(map[string]struct{}, len(lemmas))
	for _, lemma := range lemmas {
		present[lemma] = struct{}{}
	}

	vector := make([]float64, len(vocab))
	for i, word := range vocab {
		if _, ok := present[word]; ok {
			vector[i] = 1
		}
	}
	return vector
}
