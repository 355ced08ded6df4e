package hash

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestCmd(t *testing.T) {
	var out bytes.Buffer
	app := &cli.App{Writer: &out, Commands: []*cli.Command{Cmd()}}

	err := app.Run([]string{"app", "hash", "--password", "hunter2", "--salt", "pepper"})
	require.NoError(t, err)
	require.Equal(t, "l9exyr4FngIjDsKUx+KfA8JdrMu1ZqY9yqztnomq+sA=", strings.TrimSpace(out.String()))
}

func TestCmd_RequiresSalt(t *testing.T) {
	app := &cli.App{Writer: &bytes.Buffer{}, ErrWriter: &bytes.Buffer{}, Commands: []*cli.Command{Cmd()}}

	err := app.Run([]string{"app", "hash", "--password", "hunter2"})
	require.Error(t, err)
}
