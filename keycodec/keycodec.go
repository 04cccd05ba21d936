// Package keycodec packs and unpacks the (band, bucket) pair used as a
// Frequency Store hash field and as a component of Candidate Index set
// keys, and builds the storage keys those components live under.
package keycodec

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// PackedLen is the fixed width of a packed (band, bucket) pair: 1 byte of
// band, 2 bytes of big-endian bucket.
const PackedLen = 3

// KeyFormatError reports a packed band/bucket field of the wrong length.
type KeyFormatError struct {
	Got int
}

func (e *KeyFormatError) Error() string {
	return fmt.Sprintf("keycodec: malformed band/bucket field: want %d bytes, got %d", PackedLen, e.Got)
}

// Pack encodes band and bucket as a 3-byte big-endian string: band:u8
// followed by bucket:u16. band is truncated to 8 bits by the caller's
// responsibility; Pack itself does not validate range, matching the
// reference's fixed-width packing discipline.
func Pack(band uint8, bucket uint16) string {
	buf := make([]byte, PackedLen)
	buf[0] = band
	binary.BigEndian.PutUint16(buf[1:3], bucket)
	return string(buf)
}

// Unpack decodes a Pack-produced string back into (band, bucket). It
// returns a *KeyFormatError if b is not exactly PackedLen bytes.
func Unpack(b string) (band uint8, bucket uint16, err error) {
	if len(b) != PackedLen {
		return 0, 0, &KeyFormatError{Got: len(b)}
	}
	band = b[0]
	bucket = binary.BigEndian.Uint16([]byte(b[1:3]))
	return band, bucket, nil
}

// FrequencyKey builds the Frequency Store hash key for (scope,
// featureIndex, item): "{scope}:f:{featureIndex}:{item}".
func FrequencyKey(scope, featureIndex, item string) string {
	return scope + ":f:" + featureIndex + ":" + item
}

// CandidatePrefix builds the colon-delimited prefix shared by every
// time-bucket shard of a Candidate Index set for one (scope, featureIndex,
// band, bucket): "{scope}:{featureIndex}:{pack(band,bucket)}:". The packed
// bytes sit opaquely in the middle of the string; callers must not assume
// anything about their printable form.
func CandidatePrefix(scope, featureIndex string, band uint8, bucket uint16) string {
	return scope + ":" + featureIndex + ":" + Pack(band, bucket) + ":"
}

// CandidateKey appends the decimal time bucket to a CandidatePrefix,
// yielding the full Candidate Index set key for one time shard.
func CandidateKey(scope, featureIndex string, band uint8, bucket uint16, timeBucket int64) string {
	return CandidatePrefix(scope, featureIndex, band, bucket) + strconv.FormatInt(timeBucket, 10)
}
