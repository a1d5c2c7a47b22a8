package cards

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	db := seedStore(t)

	var buf bytes.Buffer
	n, err := ExportCSV(context.Background(), db, &buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, []string{"1", "Y001", "皮卡丘", "1", "C", "70", "001/100", "Arita/Himeno", "10;11"}, records[1])
	// card without details: empty cells, not "NULL"
	assert.Equal(t, []string{"3", "Y003", "基本雷能量", "3", "", "", "", "", "10"}, records[3])
}
