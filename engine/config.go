package engine

import (
	"github.com/ledgerwatch/bandindex/argdecode"
)

// Configuration is the immutable per-request configuration spec.md §3
// describes: scope, band count, window length, retention depth and the
// timestamp the request is evaluated at. It is built once by the Command
// Dispatcher and lives for the request only.
type Configuration struct {
	Scope     string
	Bands     int
	Window    int64
	Retention int64
	Timestamp int64
}

// validate enforces spec.md §3 invariant 1: bands >= 1, window > 0,
// retention >= 0.
func (cfg Configuration) validate() error {
	if cfg.Bands < 1 {
		return &argdecode.ArgumentError{Msg: "bands must be >= 1"}
	}
	if cfg.Window <= 0 {
		return &argdecode.ArgumentError{Msg: "window must be > 0"}
	}
	if cfg.Retention < 0 {
		return &argdecode.ArgumentError{Msg: "retention must be >= 0"}
	}
	return nil
}

// decodeConfiguration consumes the five leading positional tokens
// (scope, bands, window, retention, timestamp) spec.md §6 describes as
// the wire-in preamble shared by every command.
func decodeConfiguration(c *argdecode.Cursor) (Configuration, error) {
	scope, err := argdecode.String(c, "scope")
	if err != nil {
		return Configuration{}, err
	}
	bands, err := argdecode.Int(c, "bands")
	if err != nil {
		return Configuration{}, err
	}
	window, err := argdecode.Int(c, "window")
	if err != nil {
		return Configuration{}, err
	}
	retention, err := argdecode.Int(c, "retention")
	if err != nil {
		return Configuration{}, err
	}
	timestamp, err := argdecode.Int(c, "timestamp")
	if err != nil {
		return Configuration{}, err
	}
	cfg := Configuration{Scope: scope, Bands: int(bands), Window: window, Retention: retention, Timestamp: timestamp}
	if err := cfg.validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}
