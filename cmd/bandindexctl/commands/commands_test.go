package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerwatch/bandindex/engine"
)

func baseConfigForTest() engine.Configuration {
	return engine.Configuration{Scope: "s", Bands: 1, Window: 60, Retention: 1, Timestamp: 0}
}

func TestAddToRegistersExpectedSubcommands(t *testing.T) {
	root := &cobra.Command{Use: "bandindexctl"}
	AddTo(root)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.Contains(t, names, "record")
	assert.Contains(t, names, "classify")
	assert.Contains(t, names, "compare")
	assert.Contains(t, names, "run")

	flag := root.PersistentFlags().Lookup("store-mib")
	require.NotNil(t, flag, "expected --store-mib persistent flag to be registered")
	assert.Equal(t, "32", flag.DefValue)
}

func TestNewEngineBuildsAFreshStoreEachCall(t *testing.T) {
	a := newEngine()
	b := newEngine()
	require.NotNil(t, a)
	require.NotNil(t, b)

	// RECORD against a must not be visible through b: each invocation
	// starts from an empty in-memory store.
	err := a.Record(baseConfigForTest(), []string{"item1", "m1", "1", "10", "1"})
	require.NoError(t, err)

	results, err := b.Classify(baseConfigForTest(), []string{"m1", "1", "1", "10", "1"})
	require.NoError(t, err)
	assert.Empty(t, results)
}
