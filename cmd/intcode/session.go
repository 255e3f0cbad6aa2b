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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/wieslander/aoc-2019/vm"
)

const (
	ckptExt = ".ckpt"
	ctrlD   = 4
)

// session drives an ASCII program interactively. Every line of input is
// preceded by a checkpoint of the machine so that it can be undone.
//
// Lines starting with '!' are session commands and are not sent to the
// program:
//
//	!undo        revert the last input line
//	!save NAME   save the machine state to NAME.ckpt in the checkpoint directory
//	!load NAME   restore the machine state from NAME.ckpt
//	!quit        end the session
type session struct {
	m       *vm.Instance
	history []*vm.Instance
	in      *bufio.Reader
	out     *outputWriter
	dir     string
	raw     bool
}

func newSession(m *vm.Instance, r io.Reader, w io.Writer, dir string) *session {
	return &session{
		m:   m,
		in:  bufio.NewReader(r),
		out: newOutputWriter(w, true),
		dir: dir,
	}
}

func (s *session) message(format string, args ...interface{}) {
	if !s.out.bol {
		s.out.w.WriteByte('\n')
	}
	fmt.Fprintf(s.out.w, format, args...)
	s.out.w.WriteByte('\n')
	s.out.bol = true
}

func (s *session) checkpoint() {
	s.history = append(s.history, s.m.Clone())
}

// run runs the session until the program halts, the input is exhausted or a
// !quit command is received.
func (s *session) run() error {
	for {
		err := s.m.RunUntilBlocked()
		s.out.drain(s.m)
		if ferr := s.out.Flush(); err == nil {
			err = ferr
		}
		if err != nil || !s.m.Running() {
			return err
		}
		done, err := s.input()
		if done || err != nil {
			return err
		}
	}
}

// input reads the next line or key press and handles it. It returns true
// when the session should end.
func (s *session) input() (bool, error) {
	if s.raw {
		c, err := s.in.ReadByte()
		if err == io.EOF || c == ctrlD {
			return true, nil
		}
		if err != nil {
			return true, errors.Wrap(err, "read failed")
		}
		if c == '\r' {
			c = '\n'
		}
		s.checkpoint()
		s.m.Supply(vm.Cell(c))
		return false, nil
	}

	l, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || l == "") {
		if err == io.EOF {
			return true, nil
		}
		return true, errors.Wrap(err, "read failed")
	}
	l = strings.TrimRight(l, "\r\n")
	if strings.HasPrefix(l, "!") {
		return s.command(strings.Fields(l[1:]))
	}
	s.checkpoint()
	s.m.SupplyString(l + "\n")
	return false, nil
}

func (s *session) command(args []string) (bool, error) {
	if len(args) == 0 {
		s.message("missing command")
		return false, nil
	}
	switch args[0] {
	case "quit":
		return true, nil
	case "undo":
		n := len(s.history)
		if n == 0 {
			s.message("nothing to undo")
			return false, nil
		}
		s.m = s.history[n-1]
		s.history = s.history[:n-1]
		log.Debugf("undo, %d checkpoints left", n-1)
	case "save", "load":
		if len(args) != 2 {
			s.message("usage: !%s NAME", args[0])
			return false, nil
		}
		var err error
		if args[0] == "save" {
			err = s.save(args[1])
		} else {
			err = s.load(args[1])
		}
		if err != nil {
			s.message("%v", err)
		}
	default:
		s.message("unknown command %q", args[0])
	}
	return false, nil
}

func (s *session) ckptPath(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", errors.Errorf("invalid checkpoint name %q", name)
	}
	return filepath.Join(s.dir, name+ckptExt), nil
}

func (s *session) save(name string) error {
	fn, err := s.ckptPath(name)
	if err != nil {
		return err
	}
	data, err := s.m.MarshalBinary()
	if err != nil {
		return err
	}
	if err = os.WriteFile(fn, data, 0666); err != nil {
		return errors.Wrap(err, "save failed")
	}
	log.Infof("saved %s", fn)
	s.message("saved %s", name)
	return nil
}

func (s *session) load(name string) error {
	fn, err := s.ckptPath(name)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		return errors.Wrap(err, "load failed")
	}
	m := new(vm.Instance)
	if err = m.UnmarshalBinary(data); err != nil {
		return errors.Wrapf(err, "load %s", name)
	}
	s.checkpoint()
	s.m = m
	log.Infof("loaded %s", fn)
	s.message("loaded %s", name)
	return nil
}
