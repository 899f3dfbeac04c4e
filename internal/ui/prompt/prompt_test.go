package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"sitedeploy/internal/ui/prompt"

	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"yes", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"sure\n", false},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		p := prompt.NewStandardPrompter(strings.NewReader(tc.input), &out)

		got, err := p.Confirm("Delete aws.region?")
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "input %q", tc.input)
		require.Equal(t, "Delete aws.region? [y/N]: ", out.String())
	}
}

func TestConfirm_EmptyQuestion(t *testing.T) {
	p := prompt.NewStandardPrompter(strings.NewReader("y\n"), &bytes.Buffer{})
	_, err := p.Confirm("")
	require.Error(t, err)
}

func TestAssumeYes(t *testing.T) {
	ok, err := prompt.AssumeYes{}.Confirm("anything")
	require.NoError(t, err)
	require.True(t, ok)
}
