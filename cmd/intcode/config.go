// This file is part of aoc-2019 - https://github.com/wieslander/aoc-2019
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/wieslander/aoc-2019/vm"
)

// Execution modes.
const (
	modeBatch       = "batch"
	modeASCII       = "ascii"
	modeInteractive = "interactive"
)

// config is the contents of an intcode.toml file. Command line flags override
// the values found in the file.
type config struct {
	Image         string           `toml:"image"`
	Mode          string           `toml:"mode"`
	Input         []int64          `toml:"input"`
	ASCIIInput    []string         `toml:"ascii_input"`
	Poke          map[string]int64 `toml:"poke"`
	MaxSteps      int64            `toml:"max_steps"`
	CheckpointDir string           `toml:"checkpoint_dir"`
	Raw           bool             `toml:"raw"`
	Verbosity     int              `toml:"verbosity"`
}

func defaultConfig() *config {
	return &config{
		Image:         "input.txt",
		Mode:          modeBatch,
		CheckpointDir: ".",
	}
}

// loadConfig loads the configuration file fileName into cfg.
func loadConfig(fileName string, cfg *config) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return errors.Wrap(err, "cannot read config")
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Wrapf(err, "parse error in %s", fileName)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for k, key := range undec {
			keys[k] = key.String()
		}
		return errors.Errorf("%s: unknown keys: %s", fileName, strings.Join(keys, ", "))
	}
	// relative paths are relative to the config file
	dir := filepath.Dir(fileName)
	if md.IsDefined("image") && !filepath.IsAbs(cfg.Image) {
		cfg.Image = filepath.Join(dir, cfg.Image)
	}
	if md.IsDefined("checkpoint_dir") && !filepath.IsAbs(cfg.CheckpointDir) {
		cfg.CheckpointDir = filepath.Join(dir, cfg.CheckpointDir)
	}
	return nil
}

func (c *config) validate() error {
	switch c.Mode {
	case modeBatch, modeASCII, modeInteractive:
	default:
		return errors.Errorf("unknown mode %q", c.Mode)
	}
	if c.MaxSteps < 0 {
		return errors.Errorf("invalid max_steps %d", c.MaxSteps)
	}
	_, err := c.pokes()
	return err
}

// pokes returns the memory patches in the configuration as VM options.
func (c *config) pokes() ([]vm.Option, error) {
	var opts []vm.Option
	for k, v := range c.Poke {
		addr, err := strconv.ParseInt(k, 0, 64)
		if err != nil || addr < 0 {
			return nil, errors.Errorf("invalid poke address %q", k)
		}
		opts = append(opts, vm.Poke(vm.Cell(addr), vm.Cell(v)))
	}
	return opts, nil
}

// options returns the VM options for the configured pokes and inputs.
func (c *config) options() ([]vm.Option, error) {
	opts, err := c.pokes()
	if err != nil {
		return nil, err
	}
	for _, v := range c.Input {
		opts = append(opts, vm.Input(vm.Cell(v)))
	}
	for _, l := range c.ASCIIInput {
		opts = append(opts, vm.InputString(l+"\n"))
	}
	return opts, nil
}
