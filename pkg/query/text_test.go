package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFragmentText(t *testing.T) {
	t.Parallel()

	for fragment, expected := range map[string]string{
		"Plain title":                            "Plain title",
		"  Wrapped\n    title ":                  "Wrapped title",
		"Spin–orbit coupling in Na<sub>2</sub>O": "Spin–orbit coupling in Na2O",
		"<i>Ab initio</i> &amp; beyond":          "Ab initio & beyond",
		"Bounds &lt;1 eV":                        "Bounds <1 eV",
		"<jats:title>Embedding</jats:title>":     "Embedding",
	} {
		text, err := FragmentText(fragment)
		require.NoError(t, err)
		require.Equal(t, expected, text, fragment)
	}
}
