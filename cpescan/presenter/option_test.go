package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOption(t *testing.T) {
	cases := []struct {
		input    string
		expected Option
	}{
		{
			"",
			TablePresenter,
		},
		{
			"table",
			TablePresenter,
		},
		{
			"jSOn",
			JSONPresenter,
		},
		{
			"booboodepoopoo",
			UnknownPresenter,
		},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			actual := ParseOption(tc.input)
			assert.Equal(t, tc.expected, actual, "unexpected result for input %q", tc.input)
		})
	}
}
