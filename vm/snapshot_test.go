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
	"reflect"
	"testing"

	"github.com/wieslander/aoc-2019/vm"
)

// counter outputs 0, 1, 2, ... forever, using relative addressing for its
// scratch cell.
const counter = "109,50,204,0,21201,0,1,0,1105,1,2"

func TestClone(t *testing.T) {
	i := setup(t, counter, vm.Input(1, 2, 3))
	for k := 0; k < 7; k++ {
		if err := i.Step(); err != nil {
			t.Fatalf("%+v", err)
		}
	}
	want := i.Snapshot()
	c := i.Clone()

	for k := 0; k < 20; k++ {
		if err := i.Step(); err != nil {
			t.Fatalf("%+v", err)
		}
	}
	i.Supply(4)
	i.DrainAll()
	if reflect.DeepEqual(i.Snapshot(), want) {
		t.Fatal("original did not move")
	}
	if got := c.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("clone was perturbed by the original:\nwant %+v\ngot  %+v", want, got)
	}

	// restore the checkpoint by replacing the live instance
	i = c
	if got := i.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("restored state differs:\nwant %+v\ngot  %+v", want, got)
	}
	// and the clone runs just like the original did
	var out C
	for len(out) < 5 {
		v, ok, err := i.RunUntilOutput()
		if err != nil || !ok {
			t.Fatalf("%v, %v", ok, err)
		}
		out = append(out, v)
	}
	if !equal(out, C{0, 1, 2, 3, 4}) {
		t.Errorf("got %v", out)
	}
}

func TestCloneFault(t *testing.T) {
	i := setup(t, "3,0,99")
	c := i.Clone()
	if err := i.Step(); err == nil {
		t.Fatal("expected fault")
	}
	if c.Err() != nil {
		t.Fatal("fault leaked into clone")
	}
	c.Supply(5)
	if err := c.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if c.Peek(0) != 5 {
		t.Errorf("expected 5, got %d", c.Peek(0))
	}
	if i.Clone().Err() == nil {
		t.Error("clone of a faulted machine is not faulted")
	}
}

func TestReset(t *testing.T) {
	i := setup(t, "3,0,4,0,3,0,99", vm.Input(1, 2, 3))
	if err := i.Step(); err != nil {
		t.Fatalf("%+v", err)
	}
	if err := i.Step(); err != nil {
		t.Fatalf("%+v", err)
	}
	img, _ := vm.ParseString("104,7,99")
	i.Reset(img)
	fresh, _ := vm.New(img)
	if !reflect.DeepEqual(i.Snapshot(), fresh.Snapshot()) {
		t.Fatalf("reset state differs from a new machine:\n%+v\n%+v", i.Snapshot(), fresh.Snapshot())
	}
	img[1] = 8 // the machine has its own copy
	v, ok, err := i.RunUntilOutput()
	if err != nil || !ok || v != 7 {
		t.Errorf("got %v, %v, %v", v, ok, err)
	}

	// reset also clears faults
	i.Reset(vm.Image{42})
	if err := i.Run(); !vm.IsFault(err, vm.BadOpcode) {
		t.Fatalf("expected bad opcode, got %v", err)
	}
	i.Reset(vm.Image{99})
	if err := i.Run(); err != nil || i.Running() {
		t.Errorf("got %v, running: %v", err, i.Running())
	}
}

func TestMarshalBinary(t *testing.T) {
	i := setup(t, counter, vm.Input(9, 8))
	for k := 0; k < 10; k++ {
		if err := i.Step(); err != nil {
			t.Fatalf("%+v", err)
		}
	}
	data, err := i.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	again, err := i.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(again) {
		t.Error("encoding is not deterministic")
	}

	var r vm.Instance
	if err = r.UnmarshalBinary(data); err != nil {
		t.Fatalf("%+v", err)
	}
	if !reflect.DeepEqual(r.Snapshot(), i.Snapshot()) {
		t.Fatalf("decoded state differs:\nwant %+v\ngot  %+v", i.Snapshot(), r.Snapshot())
	}
	for k := 0; k < 3; k++ {
		v1, _, err1 := i.RunUntilOutput()
		v2, _, err2 := r.RunUntilOutput()
		if err1 != nil || err2 != nil || v1 != v2 {
			t.Fatalf("diverged: %d/%v, %d/%v", v1, err1, v2, err2)
		}
	}

	if err = r.UnmarshalBinary([]byte{0xff, 0x00}); err == nil {
		t.Error("expected error on garbage input")
	}
}

func TestRestoreInvalid(t *testing.T) {
	var i vm.Instance
	if err := i.Restore(&vm.Snapshot{PC: -1}); err == nil {
		t.Error("expected error for negative pc")
	}
	if err := i.Restore(&vm.Snapshot{Memory: map[vm.Cell]vm.Cell{-4: 1}}); err == nil {
		t.Error("expected error for negative address")
	}
}
