package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	type testCase struct {
		name    string
		headers []string
		want    Format
	}

	tests := []testCase{
		{
			name:    "RevolutStatement",
			headers: []string{"Type", "Product", "Description"},
			want:    FormatRevolutStatement,
		},
		{
			name:    "ExpenseViaMerchandiser",
			headers: []string{"date", "total_amt", "merchandiser"},
			want:    FormatRevolutExpense,
		},
		{
			name:    "ExpenseViaMerchantAndDate",
			headers: []string{"merchant", "date", "amount"},
			want:    FormatRevolutExpense,
		},
		{
			name:    "Monzo",
			headers: []string{"date", "total_amt"},
			want:    FormatMonzo,
		},
		{
			name:    "Unknown",
			headers: []string{"foo", "bar"},
			want:    FormatUnknown,
		},
		{
			name:    "CaseAndWhitespaceInsensitive",
			headers: []string{" TYPE ", "Product "},
			want:    FormatRevolutStatement,
		},
		{
			name:    "StatementWinsOverExpense",
			headers: []string{"type", "product", "merchandiser", "date"},
			want:    FormatRevolutStatement,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectFormat(tc.headers))
		})
	}
}
