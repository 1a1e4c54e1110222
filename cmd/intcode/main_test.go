package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/config"
	"github.com/ezrec/intcode/cpu"
)

func TestSelectMode(t *testing.T) {
	assert := assert.New(t)

	network := &config.Config{}
	network.Network.Phases = []int64{0, 1}

	table := [](struct {
		name   string
		cfg    *config.Config
		script string
		search bool
		mode   runMode
		err    error
	}){
		{"tape", &config.Config{}, "", false, RUN_TAPE, nil},
		{"script", &config.Config{}, "drive.star", false, RUN_SCRIPT, nil},
		{"network", network, "", false, RUN_NETWORK, nil},
		{"network_search", network, "", true, RUN_NETWORK, nil},
		{"network_script", network, "drive.star", false, RUN_NETWORK, nil},
		{"search_no_phases", &config.Config{}, "", true, RUN_TAPE, ErrSearchPhases},
		{"search_script", &config.Config{}, "drive.star", true, RUN_TAPE, ErrSearchPhases},
	}

	for _, entry := range table {
		mode, err := selectMode(entry.cfg, entry.script, entry.search)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.name)
			continue
		}
		assert.NoError(err, entry.name)
		assert.Equal(entry.mode, mode, entry.name)
	}
}

func TestParsePhases(t *testing.T) {
	assert := assert.New(t)

	phases, err := parsePhases("4, 3,2,1,0")
	assert.NoError(err)
	assert.Equal([]int64{4, 3, 2, 1, 0}, phases)

	_, err = parsePhases("4,x")
	assert.Error(err)
}

func TestRunNetwork(t *testing.T) {
	assert := assert.New(t)

	prog, err := cpu.ParseProgramString("3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")
	assert.NoError(err)

	cfg, err := config.Parse("[network]\nphases = [0, 1, 2, 3, 4]\n")
	assert.NoError(err)

	out := &bytes.Buffer{}
	assert.NoError(runNetwork(cfg, prog, true, out))
	assert.Equal("43210 [4 3 2 1 0]\n", out.String())

	cfg.Network.Phases = []int64{4, 3, 2, 1, 0}
	out.Reset()
	assert.NoError(runNetwork(cfg, prog, false, out))
	assert.Equal("43210\n", out.String())
}

func TestRunNetwork_CpuSettings(t *testing.T) {
	assert := assert.New(t)

	// Reads its phase, then loops forever.
	prog, err := cpu.ParseProgramString("3,0,1105,1,2")
	assert.NoError(err)

	cfg, err := config.Parse("[cpu]\nstep_limit = 1000\n[network]\nphases = [0, 1]\n")
	assert.NoError(err)

	out := &bytes.Buffer{}
	assert.ErrorIs(runNetwork(cfg, prog, false, out), cpu.ErrStepLimit)
	assert.ErrorIs(runNetwork(cfg, prog, true, out), cpu.ErrStepLimit)
	assert.Empty(out.String())
}
