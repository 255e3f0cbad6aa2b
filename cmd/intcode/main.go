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
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/wieslander/aoc-2019/asm"
	"github.com/wieslander/aoc-2019/vm"
)

var log = commonlog.GetLogger("intcode")

// cellList accepts comma separated integers and can be specified multiple
// times.
type cellList []int64

func (l *cellList) String() string { return "" }
func (l *cellList) Set(s string) error {
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.ParseInt(strings.TrimSpace(f), 0, 64)
		if err != nil {
			return err
		}
		*l = append(*l, n)
	}
	return nil
}
func (l *cellList) Get() interface{} { return []int64(*l) }

type lineList []string

func (l *lineList) String() string     { return "" }
func (l *lineList) Set(s string) error { *l = append(*l, s); return nil }
func (l *lineList) Get() interface{}   { return []string(*l) }

// pokeList accepts addr=value pairs.
type pokeList map[string]int64

func (p pokeList) String() string { return "" }
func (p pokeList) Set(s string) error {
	kv := strings.SplitN(s, "=", 2)
	if len(kv) != 2 {
		return errors.Errorf("expected addr=value, got %q", s)
	}
	addr := strings.TrimSpace(kv[0])
	if n, err := strconv.ParseInt(addr, 0, 64); err != nil || n < 0 {
		return errors.Errorf("invalid address %q", kv[0])
	}
	v, err := strconv.ParseInt(strings.TrimSpace(kv[1]), 0, 64)
	if err != nil {
		return err
	}
	p[addr] = v
	return nil
}
func (p pokeList) Get() interface{} { return map[string]int64(p) }

var (
	debug bool
	dump  bool
)

// outputWriter renders machine output. In ASCII mode, values in the ASCII
// range are written as characters and other values as decimal integers on a
// line of their own. Otherwise, every value is written on its own line.
type outputWriter struct {
	w     *bufio.Writer
	ascii bool
	bol   bool
}

func newOutputWriter(w io.Writer, ascii bool) *outputWriter {
	return &outputWriter{bufio.NewWriter(w), ascii, true}
}

func (o *outputWriter) write(v vm.Cell) {
	if o.ascii && v >= 0 && v < 128 {
		o.w.WriteByte(byte(v))
		o.bol = v == '\n'
		return
	}
	if !o.bol {
		o.w.WriteByte('\n')
	}
	o.w.WriteString(strconv.FormatInt(int64(v), 10))
	o.w.WriteByte('\n')
	o.bol = true
}

func (o *outputWriter) drain(i *vm.Instance) {
	for v, ok := i.Drain(); ok; v, ok = i.Drain() {
		o.write(v)
	}
}

func (o *outputWriter) Flush() error {
	return errors.Wrap(o.w.Flush(), "output")
}

// runBatch runs i to completion, writing its output to w as it is produced.
// It fails if the program needs input that was not supplied or if it executes
// more than maxSteps instructions.
func runBatch(i *vm.Instance, maxSteps int64, out *outputWriter) error {
	defer out.Flush()
	for i.Running() {
		if maxSteps > 0 && i.InstructionCount() >= maxSteps {
			return errors.Errorf("step limit of %d instructions reached @pc=%d", maxSteps, i.PC())
		}
		if i.NeedsInput() {
			return errors.Errorf("program needs more input @pc=%d", i.PC())
		}
		if err := i.Step(); err != nil {
			return err
		}
		out.drain(i)
	}
	return out.Flush()
}

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		in, derr := i.Decode(i.PC())
		if derr == nil {
			fmt.Fprintf(os.Stderr, "PC: %v (%v %v), RB: %v, steps: %v\n", i.PC(), in.Op, in.Params, i.RelBase(), i.InstructionCount())
		} else {
			fmt.Fprintf(os.Stderr, "PC: %v (%v), RB: %v, steps: %v\n", i.PC(), i.Peek(i.PC()), i.RelBase(), i.InstructionCount())
		}
	}
	os.Exit(1)
}

func main() {
	var err error
	var i *vm.Instance

	stdout := os.Stdout

	defer func() {
		if err == nil && dump && i != nil {
			err = dumpVM(i, stdout)
		}
		atExit(i, err)
	}()

	var (
		inputs  cellList
		lines   lineList
		pokes   = make(pokeList)
		cfgFile string
		disasm  bool
	)
	cfg := defaultConfig()

	var fileName = flag.String("image", cfg.Image, "Load program image from file `filename`")
	var mode = flag.String("mode", cfg.Mode, "execution `mode`: batch, ascii or interactive")
	var maxSteps = flag.Int64("steps", 0, "abort batch runs after `n` instructions (0 for no limit)")
	var ckptDir = flag.String("checkpoints", cfg.CheckpointDir, "`directory` for interactive save/load commands")
	var raw = flag.Bool("raw", false, "interactive mode: send key presses without waiting for a new line")
	var verbosity = flag.Int("v", 0, "log verbosity")
	flag.StringVar(&cfgFile, "config", "", "load settings from TOML file `filename`")
	flag.Var(&inputs, "input", "comma separated input `values` (can be specified multiple times)")
	flag.Var(&lines, "ascii", "input `line` in ASCII (can be specified multiple times)")
	flag.Var(pokes, "poke", "patch memory with `addr=value` before running (can be specified multiple times)")
	flag.BoolVar(&disasm, "disasm", false, "disassemble the program image and exit")
	flag.BoolVar(&dump, "dump", false, "dump machine state and memory upon exit")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")

	flag.Parse()

	if cfgFile != "" {
		if err = loadConfig(cfgFile, cfg); err != nil {
			return
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "image":
			cfg.Image = *fileName
		case "mode":
			cfg.Mode = *mode
		case "steps":
			cfg.MaxSteps = *maxSteps
		case "checkpoints":
			cfg.CheckpointDir = *ckptDir
		case "raw":
			cfg.Raw = *raw
		case "v":
			cfg.Verbosity = *verbosity
		case "input":
			cfg.Input = append(cfg.Input, inputs...)
		case "ascii":
			cfg.ASCIIInput = append(cfg.ASCIIInput, lines...)
		case "poke":
			if cfg.Poke == nil {
				cfg.Poke = make(map[string]int64)
			}
			for k, v := range pokes {
				cfg.Poke[k] = v
			}
		}
	})
	if flag.NArg() > 0 {
		cfg.Image = flag.Arg(0)
	}
	if err = cfg.validate(); err != nil {
		return
	}
	commonlog.Configure(cfg.Verbosity, nil)

	img, err := vm.Load(cfg.Image)
	if err != nil {
		return
	}
	log.Infof("loaded %d cells from %s", len(img), cfg.Image)

	if disasm {
		err = asm.DisassembleAll(img, 0, stdout)
		return
	}

	opts, err := cfg.options()
	if err != nil {
		return
	}
	i, err = vm.New(img, opts...)
	if err != nil {
		return
	}

	switch cfg.Mode {
	case modeBatch:
		err = runBatch(i, cfg.MaxSteps, newOutputWriter(stdout, false))
	case modeASCII:
		err = runBatch(i, cfg.MaxSteps, newOutputWriter(stdout, true))
	case modeInteractive:
		s := newSession(i, os.Stdin, stdout, cfg.CheckpointDir)
		if cfg.Raw && isTerminal(os.Stdin.Fd()) {
			var tearDown func()
			tearDown, err = setRawIO(os.Stdin.Fd())
			if err != nil {
				return
			}
			defer tearDown()
			s.raw = true
		}
		err = s.run()
		i = s.m
	}
	log.Infof("%d instructions executed", i.InstructionCount())
}
