package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullIfEmpty(t *testing.T) {
	type testCase struct {
		name  string
		in    string
		valid bool
	}

	tests := []testCase{
		{name: "Empty", in: "", valid: false},
		{name: "Populated", in: "Tesco", valid: true},
		{name: "Whitespace", in: " ", valid: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ns := nullIfEmpty(tc.in)

			assert.Equal(t, tc.valid, ns.Valid)
			assert.Equal(t, tc.in, ns.String)
		})
	}
}
