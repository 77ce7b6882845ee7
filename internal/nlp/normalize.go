// Package nlp implements the text front end of the FrozenBOT pipeline:
// normalization, lemma lookup, and bag-of-words vectorization. Everything
// here is deterministic and side-effect-free; the tables are loaded once at
// startup and treated as read-only.
package nlp

import "strings"

// punctuation lists every character stripped during normalization: ASCII
// punctuation plus the Spanish inverted marks.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~¡¿"

// accentFolding maps the accented vowel variants that survive lowercasing
// to their bare vowels. ñ is deliberately not folded; it is a distinct
// letter in the vocabulary.
var accentFolding = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ä': 'a',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'ö': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
}

// Normalize canonicalizes one raw utterance: lowercase, drop decimal digits
// and newlines, drop punctuation, fold accented vowels. The result may be
// empty or contain consecutive spaces; Tokenize and Lemmatize tolerate both.
func Normalize(text string) string {
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			continue
		case r == '\n':
			continue
		case strings.ContainsRune(punctuation, r):
			continue
		}
		if folded, ok := accentFolding[r]; ok {
			r = folded
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tokenize splits normalized text on single spaces. Runs of spaces produce
// empty tokens; the lemma lookup drops them along with any other token the
// table does not know.
func Tokenize(text string) []string {
	return strings.Split(text, " ")
}

// LemmaTable maps surface forms to canonical lemmas. Loaded once from the
// model artifacts and never mutated afterwards.
type LemmaTable map[string]string

// Lemmatize resolves each token through the table. Tokens without an entry
// are dropped, not passed through, so the result may be shorter than the
// input and may be empty.
func Lemmatize(tokens []string, table LemmaTable) []string {
	lemmas := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if lemma, ok := table[tok]; ok {
			lemmas = append(lemmas, lemma)
		}
	}
	return lemmas
}
