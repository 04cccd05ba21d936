// Package index implements the Frequency Store and Candidate Index: the
// two structures that sit directly on top of the Key Codec and the
// Storage Adapter, and the time-windowed set abstraction both are built
// from.
package index

// Band is a single band of a Signature: a sparse mapping from bucket to
// non-negative count. A bucket absent from the map denotes zero, matching
// spec.md §3.
type Band map[uint16]int64

// Signature is an ordered sequence of Bands, one per configured band
// index 1..bands (Signature[0] is band 1).
type Signature []Band

// NewSignature allocates a Signature with bands empty Bands.
func NewSignature(bands int) Signature {
	sig := make(Signature, bands)
	for i := range sig {
		sig[i] = make(Band)
	}
	return sig
}

// Empty reports whether the signature is the "empty" sentinel signature:
// band 1 (index 0) has no entries. spec.md §4.4 and §9 Open Question 1
// both flag that this checks band 1 only, not every band — the reference
// implementation uses band 1 as a sentinel and this implementation
// preserves that exact semantics rather than silently "fixing" it.
func (s Signature) Empty() bool {
	if len(s) == 0 {
		return true
	}
	return len(s[0]) == 0
}

// Total returns the sum of counts in band b (0-indexed).
func (b Band) Total() int64 {
	var sum int64
	for _, c := range b {
		sum += c
	}
	return sum
}

// Clone returns a deep copy of the signature.
func (s Signature) Clone() Signature {
	out := make(Signature, len(s))
	for i, band := range s {
		nb := make(Band, len(band))
		for k, v := range band {
			nb[k] = v
		}
		out[i] = nb
	}
	return out
}
