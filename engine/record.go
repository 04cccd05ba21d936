package engine

import (
	"github.com/ledgerwatch/bandindex/argdecode"
)

// Record implements the RECORD command (spec.md §4.7): a variadic list of
// (key, featureIndex, frequencies) requests, each applied in full before
// the next is decoded. RECORD is not transactional across requests within
// one call (spec.md §7): if request N fails to decode or persist, the
// requests before it have already committed.
func (e *Engine) Record(cfg Configuration, argv []string) error {
	c := argdecode.NewCursor(argv)
	fs := e.frequencyStore(cfg)
	ci := e.candidateIndex(cfg)
	log := e.opts.logger()

	count := 0
	err := argdecode.Variadic(c, func(c *argdecode.Cursor) error {
		key, err := argdecode.String(c, "item key")
		if err != nil {
			return err
		}
		featureIndex, err := argdecode.String(c, "feature index")
		if err != nil {
			return err
		}
		signature, err := decodeFrequencies(c, cfg.Bands, e.opts.MaxFrequencyBytes)
		if err != nil {
			return err
		}

		// Frequency Store writes for (featureIndex, item) happen before
		// any Candidate Index writes referencing that pair, matching the
		// ordering guarantee spec.md §5 requires.
		if err := fs.Add(featureIndex, key, signature, cfg.Timestamp); err != nil {
			return err
		}
		for bandIdx, band := range signature {
			for bucket, bucketCount := range band {
				if bucketCount == 0 {
					continue
				}
				if err := ci.Insert(featureIndex, uint8(bandIdx+1), bucket, cfg.Timestamp, key); err != nil {
					return err
				}
			}
		}
		count++
		return nil
	})
	if err != nil {
		log.Warn("record: request failed", "scope", cfg.Scope, "completed", count, "err", err)
		return err
	}

	if e.opts.Metrics != nil {
		e.opts.Metrics.RecordsTotal.Add(float64(count))
	}
	log.Debug("record: completed", "scope", cfg.Scope, "requests", count)
	return nil
}
