package index

import (
	"github.com/ledgerwatch/bandindex/kv"
)

// KeyFunc maps a discrete TimeBucket to the storage key of the set that
// shard lives under.
type KeyFunc func(timeBucket int64) string

// TimeWindowedSet is a logical set whose membership is partitioned into
// per-TimeBucket shards and read back across a retention window, matching
// spec.md §4.3. It is the shared machinery behind the Candidate Index; the
// Frequency Store does not use it.
type TimeWindowedSet struct {
	store     kv.Store
	window    int64
	retention int64
	keyFunc   KeyFunc
}

// NewTimeWindowedSet constructs a TimeWindowedSet. window must be > 0 and
// retention >= 0, matching the Configuration invariants in spec.md §3.
func NewTimeWindowedSet(store kv.Store, window, retention int64, keyFunc KeyFunc) *TimeWindowedSet {
	return &TimeWindowedSet{store: store, window: window, retention: retention, keyFunc: keyFunc}
}

// TimeBucket returns floor(timestamp/window).
func (tw *TimeWindowedSet) TimeBucket(timestamp int64) int64 {
	return floorDiv(timestamp, tw.window)
}

// Insert adds members to the shard for timestamp's time bucket, refreshing
// that shard's absolute expiration to (tb+1+retention)*window whenever at
// least one member is newly added. It returns how many members were new.
func (tw *TimeWindowedSet) Insert(timestamp int64, members ...string) (int, error) {
	tb := tw.TimeBucket(timestamp)
	key := tw.keyFunc(tb)
	added, err := tw.store.SAdd(key, members...)
	if err != nil {
		return 0, &kv.StorageError{Op: "SAdd", Key: key, Err: err}
	}
	if added > 0 {
		expireAt := (tb + 1 + tw.retention) * tw.window
		if err := tw.store.ExpireAt(key, expireAt); err != nil {
			return added, &kv.StorageError{Op: "ExpireAt", Key: key, Err: err}
		}
	}
	return added, nil
}

// Members returns every member observed in the retention window ending at
// timestamp's time bucket, with the number of time buckets in which each
// member was observed. spec.md §4.3 notes this richer occurrence count is
// exposed for future scoring refinements; the current Candidate Index
// only uses presence (count > 0).
func (tw *TimeWindowedSet) Members(timestamp int64) (map[string]int, error) {
	cur := tw.TimeBucket(timestamp)
	out := make(map[string]int)
	for tb := cur - tw.retention; tb <= cur; tb++ {
		key := tw.keyFunc(tb)
		members, err := tw.store.SMembers(key)
		if err != nil {
			return nil, &kv.StorageError{Op: "SMembers", Key: key, Err: err}
		}
		for _, m := range members {
			out[m]++
		}
	}
	return out, nil
}

// floorDiv computes floor(a/b) for b > 0, matching the spec's floor
// semantics for negative timestamps too (Go's integer division truncates
// toward zero, which floorDiv corrects for).
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
