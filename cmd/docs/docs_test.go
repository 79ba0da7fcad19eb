package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDoc(t *testing.T) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))
	return doc
}

func object(t *testing.T, m map[string]any, keys ...string) map[string]any {
	t.Helper()
	for _, k := range keys {
		next, ok := m[k].(map[string]any)
		require.True(t, ok, "missing %q", k)
		m = next
	}
	return m
}

func TestReadDoc_RecordEntryDescribesCreateAndDelete(t *testing.T) {
	post := object(t, readDoc(t), "paths", "/transactions", "post")

	assert.Equal(t,
		"Validates the entry, projects it onto the asset and stores both atomically. A create entry also creates the asset. A delete entry removes the asset and its whole history and answers with a deletion summary whose id is null.",
		post["description"])
}

func TestReadDoc_Definitions(t *testing.T) {
	defs := object(t, readDoc(t), "definitions")

	asset := object(t, defs, "dto.AssetResponse", "properties")
	assert.Contains(t, asset, "sold_at")
	assert.Contains(t, asset, "is_active")

	txType := object(t, defs, "dto.CreateTransactionRequest", "properties", "transaction_type")
	assert.Equal(t, float64(50), txType["maxLength"])
	assert.NotContains(t, txType, "pattern")
}
