package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"boardcode-go/board/boarddef"
	"boardcode-go/board/boards"
	"boardcode-go/errcode"
	"boardcode-go/internal/logging"
	"boardcode-go/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(logging.LogLevelEnvVar, "")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListJSONOrder(t *testing.T) {
	out, err := run(t, "list", "--format", "json")
	require.NoError(t, err)

	var infos []types.SymbolInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, len(boards.QTPyESP32S2Definition().Records)+len(boards.QTPyCommon))
	assert.Equal(t, "BUTTON", infos[0].Symbol)
	assert.Equal(t, "STEMMA_I2C", infos[len(infos)-1].Symbol)
}

func TestListTable(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, boards.QTPyESP32S2Name)
	assert.Contains(t, out, "i2c(sda=GPIO7,scl=GPIO6)")
	assert.Contains(t, out, "warning:")
}

func TestListUnknownBoard(t *testing.T) {
	_, err := run(t, "list", "--board", "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcode.UnknownBoard))
}

func TestResolve(t *testing.T) {
	out, err := run(t, "resolve", "A0", "SDA")
	require.NoError(t, err)
	assert.Contains(t, out, "A0 -> GPIO18")
	assert.Contains(t, out, "SDA -> GPIO7")

	out, err = run(t, "resolve", "A0", "NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcode.UnknownSymbol))
	assert.Contains(t, out, "NOPE: unknown symbol")
}

func writeDef(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestCheckFile(t *testing.T) {
	path := writeDef(t, `board: tiny
chip: esp32s2
records:
  - symbol: LED
    pin: 13
  - symbol: I2C
    bus_role: i2c
    pins: {sda: 7, scl: 6}
`)
	out, err := run(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok: tiny, 2 symbols, 0 warnings")
}

func TestCheckFileDuplicate(t *testing.T) {
	path := writeDef(t, `board: tiny
chip: esp32s2
records:
  - symbol: LED
    pin: 13
  - symbol: LED
    pin: 14
`)
	_, err := run(t, "check", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcode.DuplicateSymbol))
	assert.True(t, strings.HasPrefix(err.Error(), "check failed"))
}

func TestDumpRoundTrips(t *testing.T) {
	out, err := run(t, "dump", "--board", boards.PicoName)
	require.NoError(t, err)

	def, err := boarddef.DecodeBytes([]byte(out))
	require.NoError(t, err)
	e, _ := boards.Lookup(boards.PicoName)
	assert.Equal(t, e.Def.Board, def.Board)
	assert.Len(t, def.Records, len(e.Def.Records))
}

func TestBoards(t *testing.T) {
	out, err := run(t, "boards")
	require.NoError(t, err)
	for _, n := range boards.Names() {
		assert.Contains(t, out, n)
	}
}

func TestPaintPlainForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, "warning: x", paint(&buf, warnStyle, "warning: x"))
}
