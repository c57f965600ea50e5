package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	name  string
	count int
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}
	err := Apply(cfg,
		NoError(func(c *testConfig) { c.name = "set" }),
		New(func(c *testConfig) error {
			c.count = 3
			return nil
		}),
	)

	require.NoError(t, err)
	require.Equal(t, "set", cfg.name)
	require.Equal(t, 3, cfg.count)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	cfg := &testConfig{}

	err := Apply(cfg,
		New(func(c *testConfig) error { return boom }),
		NoError(func(c *testConfig) { c.count = 99 }),
	)

	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, cfg.count)
}
