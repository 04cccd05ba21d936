package engine

import (
	"github.com/ledgerwatch/bandindex/argdecode"
	"github.com/ledgerwatch/bandindex/index"
	"github.com/ledgerwatch/bandindex/similarity"
)

// ScoreEmpty is the sentinel score emitted in place of a kernel score when
// emptiness rules apply (spec.md §4.7 stage 3, §9 Open Question 2). It is
// serialized to the wire as -1, matching spec.md §6.
const ScoreEmpty = -1.0

// strictFlag is the only flag literal the CLASSIFY flag block recognizes.
const strictFlag = "STRICT"

var classifyFlagVocabulary = map[string]struct{}{strictFlag: {}}

type classifyQuery struct {
	featureIndex string
	threshold    int64
	signature    index.Signature
}

// ClassifyResult is one surviving candidate and its per-query scores, in
// the same order as the queries were supplied on the wire.
type ClassifyResult struct {
	Item   string
	Scores []float64
}

// Classify implements the CLASSIFY command (spec.md §4.7): an optional
// STRICT flag followed by a variadic list of (featureIndex, threshold,
// frequencies) queries. It returns surviving candidates in the order they
// are first encountered while collecting candidates query by query, and
// each query's own candidates arrive from index.CandidateIndex.Query in
// its deterministic bucket-ascending, lexically-sorted order — so the
// result order is reproducible across runs (spec.md §9 Open Question 4),
// never a product of Go's randomized map iteration.
func (e *Engine) Classify(cfg Configuration, argv []string) ([]ClassifyResult, error) {
	c := argdecode.NewCursor(argv)
	flags := argdecode.FlagSet(c, classifyFlagVocabulary)
	_, strict := flags[strictFlag]

	var queries []classifyQuery
	err := argdecode.Variadic(c, func(c *argdecode.Cursor) error {
		featureIndex, err := argdecode.String(c, "feature index")
		if err != nil {
			return err
		}
		threshold, err := argdecode.Int(c, "threshold")
		if err != nil {
			return err
		}
		signature, err := decodeFrequencies(c, cfg.Bands, e.opts.MaxFrequencyBytes)
		if err != nil {
			return err
		}
		queries = append(queries, classifyQuery{featureIndex: featureIndex, threshold: threshold, signature: signature})
		return nil
	})
	if err != nil {
		return nil, err
	}

	ci := e.candidateIndex(cfg)

	// Stage 1: candidate collection. All candidate sets are collected
	// before any filter or scoring runs, matching spec.md §5's ordering
	// guarantee for CLASSIFY.
	collisions := make(map[string][]int64)
	var order []string
	for qi, q := range queries {
		matches, qOrder, err := ci.Query(q.featureIndex, q.signature, cfg.Timestamp)
		if err != nil {
			return nil, err
		}
		for _, item := range qOrder {
			if _, ok := collisions[item]; !ok {
				collisions[item] = make([]int64, len(queries))
				order = append(order, item)
			}
			collisions[item][qi] = int64(matches[item].CollisionBands())
		}
	}

	// Stage 2: filter.
	var survivors []string
	for _, item := range order {
		counts := collisions[item]
		keep := false
		if strict {
			keep = true
			for qi, q := range queries {
				if e.opts.SkipThresholdOnEmptyQuery && q.signature.Empty() {
					continue
				}
				if counts[qi] < q.threshold {
					keep = false
					break
				}
			}
		} else {
			for qi, q := range queries {
				if counts[qi] >= q.threshold {
					keep = true
					break
				}
			}
		}
		if keep {
			survivors = append(survivors, item)
		}
	}

	// Stage 3 & 4: score and emit, fetching each survivor's stored
	// signature for every query's feature index.
	fs := e.frequencyStore(cfg)
	results := make([]ClassifyResult, 0, len(survivors))
survivorLoop:
	for _, item := range survivors {
		scores := make([]float64, len(queries))
		for qi, q := range queries {
			candidateSig, err := fs.Get(q.featureIndex, item)
			if err != nil {
				return nil, err
			}
			queryEmpty := q.signature.Empty()
			candidateEmpty := candidateSig.Empty()

			if strict {
				if queryEmpty != candidateEmpty {
					// Mismatch rejects the candidate entirely: no result
					// emitted for this item, per spec.md §4.7 stage 3.
					continue survivorLoop
				}
				if queryEmpty {
					scores[qi] = ScoreEmpty
					continue
				}
				scores[qi] = similarity.Score(q.signature, candidateSig)
				continue
			}

			if queryEmpty || candidateEmpty {
				scores[qi] = ScoreEmpty
				continue
			}
			scores[qi] = similarity.Score(q.signature, candidateSig)
		}
		results = append(results, ClassifyResult{Item: item, Scores: scores})
	}

	if e.opts.Metrics != nil {
		discipline := "lenient"
		if strict {
			discipline = "strict"
		}
		e.opts.Metrics.ClassifyTotal.WithLabelValues(discipline).Inc()
		e.opts.Metrics.ClassifyCandidatesFound.Observe(float64(len(results)))
	}
	e.opts.logger().Debug("classify: completed", "scope", cfg.Scope, "queries", len(queries), "candidates", len(order), "survivors", len(results))

	return results, nil
}
