package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		raw    string
		want   Sort
		clause string
	}{
		{"", Sort{Column: "id", Direction: Asc}, "ORDER BY id ASC"},
		{"price,desc", Sort{Column: "price", Direction: Desc}, "ORDER BY price DESC, id ASC"},
		{"name", Sort{Column: "name", Direction: Asc}, "ORDER BY name ASC, id ASC"},
		{" Category , DESC ", Sort{Column: "cat_id", Direction: Desc}, "ORDER BY cat_id DESC, id ASC"},
		{"id,desc", Sort{Column: "id", Direction: Desc}, "ORDER BY id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSort(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.clause, got.Clause())
		})
	}
}

func TestParseSortRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"description,asc", "price,asc,extra", "(SELECT 1),asc"} {
		_, err := ParseSort(raw)
		assert.Error(t, err, raw)
	}
}

func TestZeroSortClause(t *testing.T) {
	assert.Equal(t, "ORDER BY id ASC", Sort{}.Clause())
}
