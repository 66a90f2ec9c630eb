package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembranesText(t *testing.T) {
	buf, err := execute(t, NewMembranesCommand, "text", libraryDir)
	require.NoError(t, err)
	assertGolden(t, "membranes", buf.Bytes())
}

func TestMembranesJSON(t *testing.T) {
	buf, err := execute(t, NewMembranesCommand, "json", libraryDir)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   membraneList `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.Data.Count)
	require.Len(t, resp.Data.Membranes, 3)

	cmx := resp.Data.Membranes[1]
	assert.Equal(t, "CMX", cmx.Name)
	assert.True(t, cmx.XiEstimated)
	assert.InDelta(t, 3.278327719606851, cmx.Xi, 1e-9)
}

func TestMembranesErrors(t *testing.T) {
	buf, err := execute(t, NewMembranesCommand, "json", "does-not-exist")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E005", resp.Error.Code)

	// No argument and no configured library.
	_, err = execute(t, NewMembranesCommand, "text")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
