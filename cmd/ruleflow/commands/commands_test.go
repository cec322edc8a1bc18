package commands

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootExecute(t *testing.T) {
	// Without explicit args cobra would parse the test binary's own
	// -test.* flags, fail, and Execute would exit the process.
	rootCmd.SetArgs([]string{})
	assert.NotPanics(t, Execute)
}

func TestRootHelp(t *testing.T) {
	b := bytes.NewBufferString("")
	root := NewRootCommand()
	root.SetOut(b)
	root.SetArgs([]string{"help"})
	_ = root.Execute()
	output, _ := io.ReadAll(b)
	assert.Contains(t, string(output), "Available Commands")
}

func TestMetricsCommand(t *testing.T) {
	cmd := NewMetricsCommand()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{`avg(cpu, 1m) > 70 || avg(mem, 1m) > 80`})
	assert.NoError(t, cmd.Execute())
	output, _ := io.ReadAll(b)
	assert.Contains(t, string(output), "cpu")
	assert.Contains(t, string(output), "mem")
}

func TestVariablesCommand(t *testing.T) {
	cmd := NewVariablesCommand()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{`cpu > k * 2`})
	assert.NoError(t, cmd.Execute())
	output, _ := io.ReadAll(b)
	assert.Contains(t, string(output), "k")
}

func TestComplexityCommand(t *testing.T) {
	cmd := NewComplexityCommand()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{`avg(cpu, 30s) > 80 && avg(memory, 1m) > 85`})
	assert.NoError(t, cmd.Execute())
	output, _ := io.ReadAll(b)
	assert.Contains(t, string(output), "node_count: 3")
}

func TestValidateCommandRejectsUnknownMetric(t *testing.T) {
	dir := t.TempDir()
	knownFile := dir + "/known.yaml"
	assert.NoError(t, os.WriteFile(knownFile, []byte("metrics: [cpu]\n"), 0o644))

	cmd := NewValidateCommand()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{`mem > 5`, "--known-metrics-file", knownFile})
	err := cmd.Execute()
	assert.Error(t, err)
}

func TestBuildCommandReportsSuccess(t *testing.T) {
	cmd := NewBuildCommand()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{`cpu > 5`})
	assert.NoError(t, cmd.Execute())
	output, _ := io.ReadAll(b)
	assert.Contains(t, string(output), "ok")
}
