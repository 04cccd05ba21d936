package index

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru"

	"github.com/ledgerwatch/bandindex/keycodec"
	"github.com/ledgerwatch/bandindex/kv"
)

// FrequencyStore persists per-item, per-feature-index bucket-frequency
// histograms as hashes, matching spec.md §4.4.
type FrequencyStore struct {
	store     kv.Store
	scope     string
	bands     int
	window    int64
	retention int64

	// readCache, when non-nil, short-circuits repeat Get calls for the
	// same (featureIndex, item) pair within one CLASSIFY invocation. It is
	// never consulted by Add, so additivity (spec.md §8 property 2) cannot
	// be affected by a stale entry: writes always go straight to the
	// store and invalidate the corresponding cache entry.
	readCache *lru.Cache
}

// NewFrequencyStore constructs a FrequencyStore. cacheSize <= 0 disables
// the read-through cache.
func NewFrequencyStore(store kv.Store, scope string, bands int, window, retention int64, cacheSize int) *FrequencyStore {
	fs := &FrequencyStore{store: store, scope: scope, bands: bands, window: window, retention: retention}
	if cacheSize > 0 {
		c, err := lru.New(cacheSize)
		if err == nil {
			fs.readCache = c
		}
	}
	return fs
}

func (fs *FrequencyStore) cacheKey(featureIndex, item string) string {
	return featureIndex + "\x00" + item
}

// Get fetches and decodes the stored Signature for (featureIndex, item).
// Fields whose packed band falls outside [1, bands] are silently ignored,
// matching the forward-compatibility note in spec.md §4.4.
func (fs *FrequencyStore) Get(featureIndex, item string) (Signature, error) {
	ck := fs.cacheKey(featureIndex, item)
	if fs.readCache != nil {
		if v, ok := fs.readCache.Get(ck); ok {
			return v.(Signature).Clone(), nil
		}
	}

	key := keycodec.FrequencyKey(fs.scope, featureIndex, item)
	fields, err := fs.store.HGetAll(key)
	if err != nil {
		return nil, &kv.StorageError{Op: "HGetAll", Key: key, Err: err}
	}

	sig := NewSignature(fs.bands)
	for _, f := range fields {
		band, bucket, err := keycodec.Unpack(f.Field)
		if err != nil {
			return nil, err
		}
		if int(band) < 1 || int(band) > fs.bands {
			continue
		}
		count, perr := strconv.ParseInt(f.Value, 10, 64)
		if perr != nil {
			return nil, &kv.StorageError{Op: "HGetAll", Key: key, Err: perr}
		}
		sig[band-1][bucket] = count
	}

	if fs.readCache != nil {
		fs.readCache.Add(ck, sig.Clone())
	}
	return sig, nil
}

// Add accumulates signature into the stored histogram for (featureIndex,
// item): every (band, bucket, count) pair with count != 0 is applied via
// HIncrBy, then the hash's absolute expiration is refreshed to
// timestamp + retention*window. Zero-count entries are skipped entirely so
// they never materialize a hash field, matching spec.md §4.7's RECORD
// action ("for every non-zero bucket").
func (fs *FrequencyStore) Add(featureIndex, item string, signature Signature, timestamp int64) error {
	key := keycodec.FrequencyKey(fs.scope, featureIndex, item)
	wrote := false
	for bandIdx, band := range signature {
		if bandIdx >= fs.bands {
			break
		}
		for bucket, count := range band {
			if count == 0 {
				continue
			}
			field := keycodec.Pack(uint8(bandIdx+1), bucket)
			if _, err := fs.store.HIncrBy(key, field, count); err != nil {
				return &kv.StorageError{Op: "HIncrBy", Key: key, Err: err}
			}
			wrote = true
		}
	}
	if wrote {
		if err := fs.store.ExpireAt(key, timestamp+fs.retention*fs.window); err != nil {
			return &kv.StorageError{Op: "ExpireAt", Key: key, Err: err}
		}
	}
	if fs.readCache != nil {
		fs.readCache.Remove(fs.cacheKey(featureIndex, item))
	}
	return nil
}
