// Package memstore is the reference, in-process kv.Store implementation.
// It layers hash/set/TTL semantics over github.com/VictoriaMetrics/fastcache,
// the same way ethdb.ObjectDatabase in the teacher this package is adapted
// from layers a typed key/bucket API over a raw blob engine (LMDB, Bolt,
// Badger): fastcache plays the role of that raw engine here. fastcache
// itself has no notion of hash fields, set members or expiration, so this
// package keeps a small companion index of field/member names and an
// expiration table alongside it, and treats fastcache purely as the value
// arena for serialized payloads.
package memstore

import (
	"strconv"
	"sync"

	"github.com/VictoriaMetrics/fastcache"

	"github.com/ledgerwatch/bandindex/kv"
)

// DefaultSizeBytes is the default fastcache arena size: small enough for
// tests and single-process demos, matching the scale turbo-geth's
// NewMemDatabase uses for its in-memory engines.
const DefaultSizeBytes = 32 * 1024 * 1024

// Store is a kv.Store backed by a fastcache arena plus a companion
// enumeration/expiration index. The zero value is not usable; construct
// with New.
type Store struct {
	mu sync.Mutex

	cache *fastcache.Cache

	// fields maps a hash key to its set of field names; values live in
	// cache under hashValueKey(key, field).
	fields map[string]map[string]struct{}

	// members maps a set key to its set of member names. Members are
	// small strings, kept directly in the index rather than round-tripped
	// through fastcache, since SMembers always needs the full list back.
	members map[string]map[string]struct{}

	// expireAt holds the absolute Unix-second expiration of any key that
	// has one. A key absent from this map never expires.
	expireAt map[string]int64
}

// New constructs a Store with a fastcache arena of sizeBytes. Pass 0 to
// use DefaultSizeBytes.
func New(sizeBytes int) *Store {
	if sizeBytes <= 0 {
		sizeBytes = DefaultSizeBytes
	}
	return &Store{
		cache:    fastcache.New(sizeBytes),
		fields:   make(map[string]map[string]struct{}),
		members:  make(map[string]map[string]struct{}),
		expireAt: make(map[string]int64),
	}
}

func hashValueKey(key, field string) string {
	return key + "\x00" + field
}

// expireIfDue evicts key's contents if it has a recorded expiration at or
// before now. Caller must hold s.mu.
func (s *Store) expireIfDue(key string, now int64) {
	exp, ok := s.expireAt[key]
	if !ok || now < exp {
		return
	}
	if fieldSet, ok := s.fields[key]; ok {
		for field := range fieldSet {
			s.cache.Del([]byte(hashValueKey(key, field)))
		}
		delete(s.fields, key)
	}
	delete(s.members, key)
	delete(s.expireAt, key)
}

// now is overridable in tests; the engine itself never asks the store for
// wall-clock time (TTLs are always set in absolute terms by the caller),
// so this only governs when expireIfDue treats a key as stale during a
// later access.
var now = func() int64 {
	return wallClockSeconds()
}

func (s *Store) HIncrBy(key, field string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue(key, now())

	vk := hashValueKey(key, field)
	var cur int64
	if buf, ok := s.cache.HasGet(nil, []byte(vk)); ok {
		parsed, err := strconv.ParseInt(string(buf), 10, 64)
		if err != nil {
			return 0, &kv.StorageError{Op: "HIncrBy", Key: key, Err: err}
		}
		cur = parsed
	}
	cur += delta
	s.cache.Set([]byte(vk), []byte(strconv.FormatInt(cur, 10)))

	fieldSet, ok := s.fields[key]
	if !ok {
		fieldSet = make(map[string]struct{})
		s.fields[key] = fieldSet
	}
	fieldSet[field] = struct{}{}

	return cur, nil
}

func (s *Store) HGetAll(key string) ([]kv.HashField, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue(key, now())

	fieldSet, ok := s.fields[key]
	if !ok || len(fieldSet) == 0 {
		return nil, nil
	}
	out := make([]kv.HashField, 0, len(fieldSet))
	for field := range fieldSet {
		buf, found := s.cache.HasGet(nil, []byte(hashValueKey(key, field)))
		if !found {
			continue
		}
		out = append(out, kv.HashField{Field: field, Value: string(buf)})
	}
	return out, nil
}

func (s *Store) SAdd(key string, members ...string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue(key, now())

	memberSet, ok := s.members[key]
	if !ok {
		memberSet = make(map[string]struct{})
		s.members[key] = memberSet
	}
	added := 0
	for _, m := range members {
		if _, exists := memberSet[m]; !exists {
			memberSet[m] = struct{}{}
			added++
		}
	}
	return added, nil
}

func (s *Store) SMembers(key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue(key, now())

	memberSet, ok := s.members[key]
	if !ok || len(memberSet) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(memberSet))
	for m := range memberSet {
		out = append(out, m)
	}
	return out, nil
}

func (s *Store) ExpireAt(key string, unixSeconds int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireAt[key] = unixSeconds
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Reset()
	s.fields = nil
	s.members = nil
	s.expireAt = nil
	return nil
}
