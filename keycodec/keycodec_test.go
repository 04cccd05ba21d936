package keycodec

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		band   uint8
		bucket uint16
	}{
		{0, 0},
		{1, 1},
		{255, 65535},
		{7, 1024},
	}
	for _, c := range cases {
		packed := Pack(c.band, c.bucket)
		if len(packed) != PackedLen {
			t.Fatalf("Pack(%d,%d): got length %d, want %d", c.band, c.bucket, len(packed), PackedLen)
		}
		band, bucket, err := Unpack(packed)
		if err != nil {
			t.Fatalf("Unpack: unexpected error: %v", err)
		}
		if band != c.band || bucket != c.bucket {
			t.Fatalf("round trip mismatch: got (%d,%d), want (%d,%d)", band, bucket, c.band, c.bucket)
		}
	}
}

func TestUnpackRejectsWrongLength(t *testing.T) {
	for _, bad := range []string{"", "a", "abcd", "abcde"} {
		if _, _, err := Unpack(bad); err == nil {
			t.Fatalf("Unpack(%q): expected error, got nil", bad)
		}
	}
}

func TestFrequencyKey(t *testing.T) {
	got := FrequencyKey("s", "m", "item1")
	want := "s:f:m:item1"
	if got != want {
		t.Fatalf("FrequencyKey: got %q, want %q", got, want)
	}
}

func TestCandidateKeyContainsPrefixAndTimeBucket(t *testing.T) {
	key := CandidateKey("s", "m", 1, 10, 2)
	prefix := CandidatePrefix("s", "m", 1, 10)
	if len(key) != len(prefix)+1 {
		t.Fatalf("CandidateKey: got length %d, want %d", len(key), len(prefix)+1)
	}
	if key[:len(prefix)] != prefix {
		t.Fatalf("CandidateKey: does not start with prefix: %q vs %q", key, prefix)
	}
	if key[len(prefix):] != "2" {
		t.Fatalf("CandidateKey: trailing time bucket: got %q, want %q", key[len(prefix):], "2")
	}
}
