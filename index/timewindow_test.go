package index

import (
	"testing"

	"github.com/ledgerwatch/bandindex/kv/memstore"
)

func keyFuncFor(prefix string) KeyFunc {
	return func(tb int64) string {
		return prefix + itoa(tb)
	}
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func TestTimeWindowedSetInsertAndMembers(t *testing.T) {
	store := memstore.New(0)
	defer store.Close()

	// window=60, retention=1, so at timestamp=120 (tb=2) the live window
	// is tb in [1,2].
	tw := NewTimeWindowedSet(store, 60, 1, keyFuncFor("s:"))

	if _, err := tw.Insert(60, "a"); err != nil { // tb=1
		t.Fatalf("Insert: %v", err)
	}
	if _, err := tw.Insert(120, "b"); err != nil { // tb=2
		t.Fatalf("Insert: %v", err)
	}

	members, err := tw.Members(120)
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if members["a"] != 1 || members["b"] != 1 {
		t.Fatalf("Members: got %v, want a=1 b=1", members)
	}
}

func TestTimeWindowedSetSlidesOutOfRetention(t *testing.T) {
	store := memstore.New(0)
	defer store.Close()

	tw := NewTimeWindowedSet(store, 60, 1, keyFuncFor("s:"))

	if _, err := tw.Insert(0, "old"); err != nil { // tb=0
		t.Fatalf("Insert: %v", err)
	}

	// At timestamp=180, tb=3, retention window is [2,3] — tb=0 is out.
	members, err := tw.Members(180)
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if _, ok := members["old"]; ok {
		t.Fatalf("expected old item to have slid out of the retention window")
	}
}

func TestTimeWindowedSetOccurrenceCountAcrossBuckets(t *testing.T) {
	store := memstore.New(0)
	defer store.Close()

	tw := NewTimeWindowedSet(store, 60, 2, keyFuncFor("s:"))
	if _, err := tw.Insert(0, "a"); err != nil { // tb=0
		t.Fatalf("Insert: %v", err)
	}
	if _, err := tw.Insert(60, "a"); err != nil { // tb=1
		t.Fatalf("Insert: %v", err)
	}

	members, err := tw.Members(120) // tb=2, window [0,2]
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if members["a"] != 2 {
		t.Fatalf("expected occurrence count 2 across two time buckets, got %d", members["a"])
	}
}
