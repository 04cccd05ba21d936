package index

import (
	"sort"

	"github.com/RoaringBitmap/roaring"

	"github.com/ledgerwatch/bandindex/keycodec"
	"github.com/ledgerwatch/bandindex/kv"
)

// CandidateIndex is the inverted index from (featureIndex, band, bucket)
// to the set of item keys observed there, partitioned by time bucket and
// read back across a retention window, matching spec.md §4.5. Insertion
// and lookup are both delegated to a fresh TimeWindowedSet per
// (featureIndex, band, bucket) coordinate; the CandidateIndex itself holds
// no state beyond the store handle and configuration.
type CandidateIndex struct {
	store     kv.Store
	scope     string
	window    int64
	retention int64
}

// NewCandidateIndex constructs a CandidateIndex.
func NewCandidateIndex(store kv.Store, scope string, window, retention int64) *CandidateIndex {
	return &CandidateIndex{store: store, scope: scope, window: window, retention: retention}
}

func (ci *CandidateIndex) windowedSet(featureIndex string, band uint8, bucket uint16) *TimeWindowedSet {
	return NewTimeWindowedSet(ci.store, ci.window, ci.retention, func(tb int64) string {
		return keycodec.CandidateKey(ci.scope, featureIndex, band, bucket, tb)
	})
}

// Insert records that item was observed at (featureIndex, band, bucket) at
// timestamp.
func (ci *CandidateIndex) Insert(featureIndex string, band uint8, bucket uint16, timestamp int64, item string) error {
	_, err := ci.windowedSet(featureIndex, band, bucket).Insert(timestamp, item)
	return err
}

// CandidateMatch reports, for one candidate item, the set of bands in
// which it collided with the query signature, via a roaring.Bitmap whose
// set bits are 0-indexed band positions — the "small bitset of width
// bands" spec.md §9 suggests in place of the reference's auto-vivifying
// nested maps.
type CandidateMatch struct {
	Bitmap *roaring.Bitmap
}

// CollisionBands returns the number of distinct bands in which this
// candidate collided with the query, i.e. the bitmap's cardinality.
func (m *CandidateMatch) CollisionBands() int {
	if m.Bitmap == nil {
		return 0
	}
	return int(m.Bitmap.GetCardinality())
}

// Query collects, for every (band, bucket) present in signature, the
// members of the current retention window, and accumulates per candidate
// the set of bands in which it was seen. order is deterministic — buckets
// within a band are visited in ascending numeric order, and candidates
// newly observed within one bucket are visited in lexical order — rather
// than Go's randomized map iteration order, so CLASSIFY can emit results
// reproducibly (spec.md §9 Open Question 4) across runs of the same
// input.
func (ci *CandidateIndex) Query(featureIndex string, signature Signature, timestamp int64) (matches map[string]*CandidateMatch, order []string, err error) {
	matches = make(map[string]*CandidateMatch)
	for bandIdx, band := range signature {
		buckets := make([]uint16, 0, len(band))
		for bucket := range band {
			buckets = append(buckets, bucket)
		}
		sort.Slice(buckets, func(i, j int) bool { return buckets[i] < buckets[j] })

		for _, bucket := range buckets {
			members, err := ci.windowedSet(featureIndex, uint8(bandIdx+1), bucket).Members(timestamp)
			if err != nil {
				return nil, nil, err
			}
			candidates := make([]string, 0, len(members))
			for candidate := range members {
				candidates = append(candidates, candidate)
			}
			sort.Strings(candidates)

			for _, candidate := range candidates {
				match, ok := matches[candidate]
				if !ok {
					match = &CandidateMatch{Bitmap: roaring.New()}
					matches[candidate] = match
					order = append(order, candidate)
				}
				match.Bitmap.Add(uint32(bandIdx))
			}
		}
	}
	return matches, order, nil
}
