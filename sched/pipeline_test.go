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

package sched_test

import (
	"context"
	"testing"

	"github.com/wieslander/aoc-2019/sched"
	"github.com/wieslander/aoc-2019/vm"
)

func parse(t *testing.T, code string) vm.Image {
	t.Helper()
	img, err := vm.ParseString(code)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return img
}

func TestPipeline(t *testing.T) {
	data := []struct {
		name     string
		code     string
		feedback bool
		phases   []vm.Cell
		out      vm.Cell
	}{
		{"chain", "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0", false, []vm.Cell{4, 3, 2, 1, 0}, 43210},
		{"chain2", "3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0", false, []vm.Cell{0, 1, 2, 3, 4}, 54321},
		{"feedback", "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5", true, []vm.Cell{9, 8, 7, 6, 5}, 139629729},
	}
	for _, d := range data {
		p := sched.NewPipeline(parse(t, d.code), d.feedback)
		// run twice to check that stages are properly reset
		for k := 0; k < 2; k++ {
			out, err := p.Run(context.Background(), 0, d.phases...)
			if err != nil {
				t.Fatalf("%s: %+v", d.name, err)
			}
			if out != d.out {
				t.Errorf("%s: expected %d, got %d", d.name, d.out, out)
			}
		}
	}
}

func TestPipelineErrors(t *testing.T) {
	p := sched.NewPipeline(parse(t, "3,0,3,0,42"), false)
	if _, err := p.Run(context.Background(), 0); err == nil {
		t.Error("expected error for an empty pipeline")
	}
	_, err := p.Run(context.Background(), 0, 1, 2)
	if !vm.IsFault(err, vm.BadOpcode) {
		t.Errorf("expected bad opcode, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p = sched.NewPipeline(parse(t, "3,0,3,0,4,0,99"), true)
	if _, err = p.Run(ctx, 0, 1); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
