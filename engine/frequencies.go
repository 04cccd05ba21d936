package engine

import (
	"github.com/c2h5oh/datasize"

	"github.com/ledgerwatch/bandindex/argdecode"
	"github.com/ledgerwatch/bandindex/index"
)

// DefaultMaxFrequencyBytes is a generous value for Options.MaxFrequencyBytes,
// the same kind of size guard bitmapdb.ShardLimit applies to bitmap shards
// in the teacher this engine is adapted from. It is not applied
// automatically: an Options value whose MaxFrequencyBytes is left at 0 has
// no guard. Each pair is counted as keycodec.PackedLen + 8 bytes (the
// packed bucket/band field plus an 8-byte count) for the purpose of this
// guard.
const DefaultMaxFrequencyBytes = 4 * datasize.MB

const bytesPerEntry = 3 + 8

// decodeFrequencies decodes the fixed-band-count frequencies grammar
// shared by RECORD and CLASSIFY (spec.md §6): for each band in order
// 1..bands, a count n_b followed by n_b (bucket, count) pairs. maxBytes,
// if non-zero, bounds the cumulative decoded payload size.
func decodeFrequencies(c *argdecode.Cursor, bands int, maxBytes datasize.ByteSize) (index.Signature, error) {
	sig := index.NewSignature(bands)
	var decodedBytes uint64
	for b := 0; b < bands; b++ {
		n, err := argdecode.Int(c, "band entry count")
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, &argdecode.ArgumentError{Pos: c.Pos, Msg: "band entry count cannot be negative"}
		}
		for i := int64(0); i < n; i++ {
			bucket, err := argdecode.Int(c, "bucket")
			if err != nil {
				return nil, err
			}
			if bucket < 0 || bucket > 0xFFFF {
				return nil, &argdecode.ArgumentError{Pos: c.Pos - 1, Msg: "bucket out of u16 range"}
			}
			count, err := argdecode.Int(c, "count")
			if err != nil {
				return nil, err
			}
			sig[b][uint16(bucket)] += count

			decodedBytes += bytesPerEntry
			if maxBytes > 0 && decodedBytes > uint64(maxBytes) {
				return nil, &argdecode.ArgumentError{Pos: c.Pos, Msg: "frequencies payload exceeds configured maximum"}
			}
		}
	}
	return sig, nil
}
