package classlist

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListing_WriteTo(t *testing.T) {
	tests := []struct {
		name     string
		listing  Listing
		expected string
	}{
		{
			name:     "empty",
			expected: "",
		},
		{
			name: "unlabeled section",
			listing: Listing{Sections: []Section{
				{Classes: []string{"javax.A", "javax.B"}},
			}},
			expected: "javax.A\njavax.B\n",
		},
		{
			name: "labeled sections",
			listing: Listing{Sections: []Section{
				{Archive: "eap7/modules/x.jar", Classes: []string{"P"}},
				{Archive: "eap7/modules/empty.jar"},
				{Archive: "eap7/modules/sub/y.jar", Classes: []string{"Q", "R"}},
			}},
			expected: "eap7/modules/x.jar=\nP\neap7/modules/empty.jar=\neap7/modules/sub/y.jar=\nQ\nR\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := test.listing.WriteTo(&buf)
			require.NoError(t, err)

			assert.Equal(t, test.expected, buf.String())
			assert.Equal(t, int64(len(test.expected)), n)
			assert.Equal(t, test.expected, test.listing.String())
		})
	}
}

func TestListing_ClassCount(t *testing.T) {
	l := Listing{Sections: []Section{
		{Archive: "a", Classes: []string{"A", "B"}},
		{Archive: "b"},
		{Classes: []string{"C"}},
	}}
	assert.Equal(t, 3, l.ClassCount())
}
