// Package script embeds the engine behind a goja JavaScript runtime,
// giving a concrete shape to the "host's scripted atomic context" spec.md
// §5 describes: a caller-supplied snippet runs to completion on a single
// goroutine with no suspension point, the same non-preemptive execution
// model an embedded Lua/JS script gives a key-value store. It is not a
// transport — no network listener is involved here, the same way
// github.com/dop251/goja is used for in-process scripting elsewhere in
// this corpus, never as an RPC surface.
package script

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/ledgerwatch/bandindex/engine"
)

// Runtime binds one engine.Engine to a goja VM and exposes `record`,
// `classify` and `compare` as host functions taking the same positional
// argument vector the Command Dispatcher consumes, plus the leading
// Configuration fields.
type Runtime struct {
	vm  *goja.Runtime
	eng *engine.Engine
}

// New constructs a Runtime bound to eng and registers the host functions.
func New(eng *engine.Engine) *Runtime {
	r := &Runtime{vm: goja.New(), eng: eng}
	r.vm.Set("record", r.record)
	r.vm.Set("classify", r.classify)
	r.vm.Set("compare", r.compare)
	return r
}

// Run evaluates src to completion and returns its final value. The whole
// call — including every record/classify/compare invocation the script
// makes — runs synchronously on the calling goroutine.
func (r *Runtime) Run(src string) (goja.Value, error) {
	return r.vm.RunString(src)
}

func toStrings(argv []interface{}) ([]string, error) {
	out := make([]string, len(argv))
	for i, a := range argv {
		out[i] = fmt.Sprintf("%v", a)
	}
	return out, nil
}

func configFromArgs(cfg map[string]interface{}) (engine.Configuration, error) {
	get := func(k string) interface{} { return cfg[k] }
	asInt := func(v interface{}) int64 {
		switch n := v.(type) {
		case int64:
			return n
		case float64:
			return int64(n)
		default:
			return 0
		}
	}
	return engine.Configuration{
		Scope:     fmt.Sprintf("%v", get("scope")),
		Bands:     int(asInt(get("bands"))),
		Window:    asInt(get("window")),
		Retention: asInt(get("retention")),
		Timestamp: asInt(get("timestamp")),
	}, nil
}

func (r *Runtime) record(cfgObj map[string]interface{}, argv []interface{}) (bool, error) {
	cfg, err := configFromArgs(cfgObj)
	if err != nil {
		return false, err
	}
	args, err := toStrings(argv)
	if err != nil {
		return false, err
	}
	if err := r.eng.Record(cfg, args); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Runtime) classify(cfgObj map[string]interface{}, argv []interface{}) ([]engine.ClassifyResult, error) {
	cfg, err := configFromArgs(cfgObj)
	if err != nil {
		return nil, err
	}
	args, err := toStrings(argv)
	if err != nil {
		return nil, err
	}
	return r.eng.Classify(cfg, args)
}

func (r *Runtime) compare(cfgObj map[string]interface{}, argv []interface{}) (float64, error) {
	cfg, err := configFromArgs(cfgObj)
	if err != nil {
		return 0, err
	}
	args, err := toStrings(argv)
	if err != nil {
		return 0, err
	}
	return r.eng.Compare(cfg, args)
}
