package similarity

import (
	"testing"

	"github.com/ledgerwatch/bandindex/index"
)

func sigFromBands(bands ...map[uint16]int64) index.Signature {
	sig := index.NewSignature(len(bands))
	for i, b := range bands {
		for k, v := range b {
			sig[i][k] = v
		}
	}
	return sig
}

func TestScoreSelfSimilarityIsOne(t *testing.T) {
	sig := sigFromBands(map[uint16]int64{10: 3, 11: 1}, map[uint16]int64{20: 2})
	got := Score(sig, sig.Clone())
	if got != 1 {
		t.Fatalf("self-similarity: got %v, want 1", got)
	}
}

func TestScoreIsSymmetric(t *testing.T) {
	a := sigFromBands(map[uint16]int64{10: 3, 11: 1})
	b := sigFromBands(map[uint16]int64{10: 1, 11: 3})
	if Score(a, b) != Score(b, a) {
		t.Fatalf("Score not symmetric: Score(a,b)=%v Score(b,a)=%v", Score(a, b), Score(b, a))
	}
}

func TestScoreDisjointBandsIsZero(t *testing.T) {
	a := sigFromBands(map[uint16]int64{10: 1})
	b := sigFromBands(map[uint16]int64{20: 1})
	got := Score(a, b)
	if got != 0 {
		t.Fatalf("disjoint bands: got %v, want 0", got)
	}
}

func TestScorePartialOverlapMatchesWorkedExample(t *testing.T) {
	// spec.md worked example E2: band1 {10:1,11:1} vs query {10:1}
	// normalized distance = |0.5-1| + |0.5-0| = 1, similarity = 1 - 1/2 = 0.5
	a := sigFromBands(map[uint16]int64{10: 1, 11: 1})
	b := sigFromBands(map[uint16]int64{10: 1})
	got := Score(a, b)
	if got != 0.5 {
		t.Fatalf("partial overlap: got %v, want 0.5", got)
	}
}

func TestScoreEmptyBandContributesMaxDistance(t *testing.T) {
	a := sigFromBands(map[uint16]int64{})
	b := sigFromBands(map[uint16]int64{10: 1})
	got := Score(a, b)
	if got != 0 {
		t.Fatalf("empty vs non-empty band: got %v, want 0", got)
	}
}

func TestScoreIsWithinUnitRange(t *testing.T) {
	a := sigFromBands(map[uint16]int64{1: 5, 2: 1}, map[uint16]int64{3: 2})
	b := sigFromBands(map[uint16]int64{1: 1, 4: 5}, map[uint16]int64{3: 1, 5: 1})
	got := Score(a, b)
	if got < 0 || got > 1 {
		t.Fatalf("Score out of range: got %v", got)
	}
}
