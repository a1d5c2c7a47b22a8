package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, `{
		"dict": {"rarity": [{"id": 1, "typeCode": "rarity", "dictCode": "C", "dictValue": "Common"}]},
		"collections": [{"id": 10, "name": "Starter", "cards": [{"id": 1}, {"id": "broken", "details": 5}]}]
	}`)

	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Dict, 1)
	require.Len(t, doc.Collections, 1)
	// card entries stay raw, so a malformed one does not fail the load
	assert.Len(t, doc.Collections[0].Cards, 2)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid json", content: `{"dict": {`},
		{name: "missing dict", content: `{"collections": []}`},
		{name: "null dict", content: `{"dict": null, "collections": []}`},
		{name: "missing collections", content: `{"dict": {}}`},
		{name: "collections not a list", content: `{"dict": {}, "collections": {}}`},
		{name: "collection id not integer", content: `{"dict": {}, "collections": [{"id": "x"}]}`},
		{name: "boolean dictionary value", content: `{"dict": {"rarity": [{"id": 1, "typeCode": "rarity", "dictCode": "C", "status": true}]}, "collections": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, t.TempDir(), tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestLoad_EmptyDocument(t *testing.T) {
	path := writeSource(t, t.TempDir(), `{"dict": {}, "collections": []}`)
	doc, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, doc.Dict)
	assert.Empty(t, doc.Collections)
}
