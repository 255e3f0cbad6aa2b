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

package vm_test

import (
	"testing"

	"github.com/wieslander/aoc-2019/vm"
)

// echo2 reads two values and outputs them back, doubled.
const echo2 = "3,20,3,21,1002,20,2,20,4,20,1002,21,2,21,4,21,99"

func TestNeedsInput(t *testing.T) {
	i := setup(t, echo2)
	if !i.NeedsInput() {
		t.Fatal("NeedsInput false before first input instruction")
	}
	if i.HasOutput() {
		t.Fatal("HasOutput true on a fresh machine")
	}
	pc := i.PC()
	i.Supply(21)
	if i.NeedsInput() {
		t.Fatal("NeedsInput true right after Supply")
	}
	if i.PC() != pc || i.InstructionCount() != 0 {
		t.Fatal("Supply or NeedsInput changed the machine state")
	}
	if err := i.Step(); err != nil {
		t.Fatalf("%+v", err)
	}
	if !i.NeedsInput() {
		t.Fatal("NeedsInput false before second input instruction")
	}
	if err := i.Step(); !vm.IsFault(err, vm.NoInput) {
		t.Fatalf("expected input fault, got %v", err)
	}
}

func TestStepByStep(t *testing.T) {
	i := setup(t, echo2, vm.Input(21, 4))
	var out C
	for steps := 0; i.Running(); steps++ {
		if steps > 100 {
			t.Fatal("machine did not halt")
		}
		if i.NeedsInput() {
			t.Fatal("unexpected input request")
		}
		if err := i.Step(); err != nil {
			t.Fatalf("%+v", err)
		}
		if v, ok := i.Drain(); ok {
			out = append(out, v)
		}
	}
	if !equal(out, C{42, 8}) {
		t.Errorf("expected [42 8], got %v", out)
	}
	pc, n := i.PC(), i.InstructionCount()
	if err := i.Step(); err != nil {
		t.Fatalf("Step on a halted machine: %v", err)
	}
	if i.PC() != pc || i.InstructionCount() != n {
		t.Error("Step on a halted machine changed its state")
	}
	if i.Peek(pc) != vm.Cell(vm.OpHalt) {
		t.Errorf("pc %d does not point to the halt instruction", pc)
	}
}

func TestRunUntilOutput(t *testing.T) {
	img, _ := vm.ParseString(quine)
	i, _ := vm.New(img)
	var out C
	for {
		v, ok, err := i.RunUntilOutput()
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if !ok {
			break
		}
		out = append(out, v)
	}
	if !equal(out, img) {
		t.Errorf("expected %v, got %v", img, out)
	}
	if i.Running() || i.HasOutput() {
		t.Error("machine should be halted with an empty output queue")
	}
	if _, ok, err := i.RunUntilOutput(); ok || err != nil {
		t.Errorf("RunUntilOutput on a halted machine returned %v, %v", ok, err)
	}
}

// Output values are delivered lazily, one at a time, while the program keeps
// running between them.
func TestRunUntilOutputInterleaved(t *testing.T) {
	i := setup(t, echo2)
	i.Supply(1)
	if _, _, err := i.RunUntilOutput(); !vm.IsFault(err, vm.NoInput) {
		t.Fatalf("expected input fault, got %v", err)
	}

	i = setup(t, echo2)
	i.Supply(1, 2)
	v, ok, err := i.RunUntilOutput()
	if err != nil || !ok || v != 2 {
		t.Fatalf("got %v, %v, %v", v, ok, err)
	}
	if !i.Running() {
		t.Fatal("machine halted early")
	}
	v, ok, err = i.RunUntilOutput()
	if err != nil || !ok || v != 4 {
		t.Fatalf("got %v, %v, %v", v, ok, err)
	}
	if _, ok, _ = i.RunUntilOutput(); ok {
		t.Fatal("extra output")
	}
}

func TestRunUntilBlocked(t *testing.T) {
	// prompt, read a value, print it twice, repeat until 0
	i := setup(t, "104,63,3,20,4,20,4,20,1006,20,14,1105,1,0,99")
	if err := i.RunUntilBlocked(); err != nil {
		t.Fatalf("%+v", err)
	}
	if !i.NeedsInput() {
		t.Fatal("machine not blocked on input")
	}
	if out := i.DrainAll(); !equal(out, C{'?'}) {
		t.Fatalf("expected prompt, got %v", out)
	}
	i.Supply(7)
	if err := i.RunUntilBlocked(); err != nil {
		t.Fatalf("%+v", err)
	}
	if out := i.DrainAll(); !equal(out, C{7, 7, '?'}) {
		t.Fatalf("expected [7 7 63], got %v", out)
	}
	i.Supply(0)
	if err := i.RunUntilBlocked(); err != nil {
		t.Fatalf("%+v", err)
	}
	if i.Running() {
		t.Fatal("machine did not halt")
	}
	if out := i.DrainAll(); !equal(out, C{0, 0}) {
		t.Fatalf("expected [0 0], got %v", out)
	}
	if i.DrainAll() != nil {
		t.Fatal("DrainAll did not empty the output queue")
	}
}

func TestSupplyString(t *testing.T) {
	i := setup(t, "3,100,4,100,3,100,4,100,3,100,4,100,99", vm.InputString("hé"))
	i.SupplyString("\n")
	if err := i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if out := i.DrainAll(); !equal(out, C{'h', 'é', '\n'}) {
		t.Errorf("got %v", out)
	}
}

func TestInputOrder(t *testing.T) {
	// copy 5 inputs to the output
	i := setup(t, "3,50,4,50,1001,51,1,51,1007,51,5,52,1005,52,0,99")
	i.Supply(5, 4)
	i.Supply(3)
	i.Supply(2, 1)
	if err := i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if out := i.DrainAll(); !equal(out, C{5, 4, 3, 2, 1}) {
		t.Errorf("got %v", out)
	}
}
