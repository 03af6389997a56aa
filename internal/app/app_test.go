package app

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/dmorvan/divecalc/internal/pkg/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(args ...string) (string, error) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestPlanCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute("--dir", dir, "plan", "30", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "descent")
	assert.Contains(t, out, "bottom")
	assert.Contains(t, out, "run time 24:00")
}

func TestPlanCommandBadArgs(t *testing.T) {
	dir := t.TempDir()
	_, err := execute("--dir", dir, "plan", "thirty", "20")
	assert.Error(t, err)
	_, err = execute("--dir", dir, "plan", "30", "20", "--mode", "sidemount")
	assert.Error(t, err)
	// flag values persist between runs
	planMode = "oc"
}

func TestGasCommands(t *testing.T) {
	dir := t.TempDir()

	_, err := execute("--dir", dir, "gas", "add", "50", "--role", "deco", "--capacity", "7")
	require.NoError(t, err)
	out, err := execute("--dir", dir, "gas", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Air")
	assert.Contains(t, out, "EAN50")

	_, err = execute("--dir", dir, "gas", "disable", "1")
	require.NoError(t, err)
	out, err = execute("--dir", dir, "gas", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "inactive")

	_, err = execute("--dir", dir, "gas", "del", "1")
	require.NoError(t, err)
	out, err = execute("--dir", dir, "gas", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "EAN50")

	_, err = execute("--dir", dir, "gas", "del", "7")
	assert.Error(t, err)
}

func TestScheduleCommands(t *testing.T) {
	dir := t.TempDir()

	_, err := execute("--dir", dir, "stop", "add", "6", "3")
	require.NoError(t, err)
	out, err := execute("--dir", dir, "stop", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "6")

	_, err = execute("--dir", dir, "sp", "add", "15", "1.45")
	require.NoError(t, err)
	out, err = execute("--dir", dir, "sp", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1.45")

	// five breakpoints configured; the last one cannot be removed
	for i := 0; i < 4; i++ {
		_, err = execute("--dir", dir, "sp", "del", "0")
		require.NoError(t, err)
	}
	_, err = execute("--dir", dir, "sp", "del", "0")
	assert.Error(t, err)
}

func TestParamsCommand(t *testing.T) {
	dir := t.TempDir()

	_, err := execute("--dir", dir, "params", "gf_low=40", "gf_high=80")
	require.NoError(t, err)
	out, err := execute("--dir", dir, "params")
	require.NoError(t, err)
	assert.Contains(t, out, "gf_low: 40")
	assert.Contains(t, out, "gf_high: 80")

	_, err = execute("--dir", dir, "params", "gf_low=200")
	assert.Error(t, err)
	_, err = execute("--dir", dir, "params", "nonsense")
	assert.Error(t, err)
}

func TestMaxTimeCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute("--dir", dir, "maxtime", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "max bottom time at 15 m")
}

func TestJournalCommands(t *testing.T) {
	dir := t.TempDir()

	_, err := execute("--dir", dir, "plan", "30", "20", "--save")
	require.NoError(t, err)
	planSave = false

	out, err := execute("--dir", dir, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "30")

	out, err = execute("--dir", dir, "journal", "oxtox")
	require.NoError(t, err)
	assert.Contains(t, out, "CNS")

	_, err = execute("--dir", dir, "journal", "del", "1")
	require.NoError(t, err)
	_, err = execute("--dir", dir, "journal", "del", "1")
	assert.Error(t, err)
}

func TestScriptCommand(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "plan.lua")
	must.WriteFile(filename, []byte(`
dp:Dive(30, 20)
dp:Plan()
assert(dp:RunTime() > 0)
`), 0666)
	_, err := execute("--dir", dir, "script", filename)
	require.NoError(t, err)

	must.WriteFile(filename, []byte(`dp:Dive(-1, 0)`), 0666)
	_, err = execute("--dir", dir, "script", filename)
	assert.Error(t, err)
}
