package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanpama/graphy/internal/language"
	"github.com/hanpama/graphy/internal/selection"
)

type selectionField = selection.SelectionField

var field = selection.Field

func requireParses(t *testing.T, query string) {
	t.Helper()
	_, err := language.ParseQuery(query)
	require.NoError(t, err, query)
}
