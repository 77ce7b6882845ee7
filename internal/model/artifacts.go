// Package model loads the pre-built classifier artifacts (vocabulary, lemma
// table, response table, network weights) and runs inference over them. The
// artifacts are opaque training outputs; this package only validates that
// they fit together. A default artifact set is baked into the binary,
// mirroring the production deployment; a model directory in the config
// overrides it.
package model

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/RGJohana/Bot-Frozen/internal/nlp"
)

//go:embed artifacts/vocab.json artifacts/lemmas.json artifacts/responses.json artifacts/frozenbot.json
var embeddedArtifacts embed.FS

// Artifact file names inside a model directory.
const (
	vocabFile     = "vocab.json"
	lemmasFile    = "lemmas.json"
	responsesFile = "responses.json"
	networkFile   = "frozenbot.json"
)

// Artifacts bundles the four pre-built resources the pipeline consumes.
// All fields are read-only after Load.
type Artifacts struct {
	Vocab     nlp.Vocabulary
	Lemmas    nlp.LemmaTable
	Responses [][]string
	Network   *Network
}

// LoadEmbedded loads the artifact set baked into the binary.
func LoadEmbedded() (*Artifacts, error) {
	sub, err := fs.Sub(embeddedArtifacts, "artifacts")
	if err != nil {
		return nil, fmt.Errorf("embedded artifacts: %w", err)
	}
	return loadFS(sub)
}

// Load reads an artifact set from dir, or the embedded defaults when dir is
// empty. Any missing or malformed artifact is fatal to the caller; there is
// no degraded mode without a model.
func Load(dir string) (*Artifacts, error) {
	if dir == "" {
		return LoadEmbedded()
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("model directory %s: %w", dir, err)
	}
	return loadFS(os.DirFS(dir))
}

func loadFS(fsys fs.FS) (*Artifacts, error) {
	a := &Artifacts{}

	if err := readJSON(fsys, vocabFile, &a.Vocab); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, lemmasFile, &a.Lemmas); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, responsesFile, &a.Responses); err != nil {
		return nil, err
	}
	a.Network = &Network{}
	if err := readJSON(fsys, networkFile, a.Network); err != nil {
		return nil, err
	}

	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, filepath.ToSlash(name))
	if err != nil {
		return fmt.Errorf("reading artifact %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing artifact %s: %w", name, err)
	}
	return nil
}

// validate cross-checks the artifact set: the network must accept a
// bag-of-words vector over the vocabulary and emit one probability per
// response-table entry, and every label needs at least one response.
func (a *Artifacts) validate() error {
	if len(a.Vocab) == 0 {
		return fmt.Errorf("artifact %s: empty vocabulary", vocabFile)
	}
	if len(a.Responses) == 0 {
		return fmt.Errorf("artifact %s: empty response table", responsesFile)
	}
	for label, choices := range a.Responses {
		if len(choices) == 0 {
			return fmt.Errorf("artifact %s: label %d has no responses", responsesFile, label)
		}
	}
	if err := a.Network.validate(); err != nil {
		return fmt.Errorf("artifact %s: %w", networkFile, err)
	}
	if got := a.Network.InputSize(); got != len(a.Vocab) {
		return fmt.Errorf("artifact %s: input size %d does not match vocabulary size %d",
			networkFile, got, len(a.Vocab))
	}
	if got := a.Network.OutputSize(); got != len(a.Responses) {
		return fmt.Errorf("artifact %s: output size %d does not match response table size %d",
			networkFile, got, len(a.Responses))
	}
	return nil
}
