//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits the JSON form of a request before it is sent.
type Mutation func(m map[string]any)

// JSONMap round-trips v through JSON so a test can break individual fields of a valid request.
func JSONMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, mut := range muts {
		mut(m)
	}
	return m
}
