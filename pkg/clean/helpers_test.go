package clean

import (
	"testing"

	"github.com/bastiangx/menuclean/pkg/rules"
	"github.com/stretchr/testify/require"
)

func newTestCleaner(t *testing.T) *Cleaner {
	t.Helper()
	c, err := New(rules.Default(), DefaultOptions())
	require.NoError(t, err)
	return c
}
