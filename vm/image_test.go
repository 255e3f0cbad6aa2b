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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/wieslander/aoc-2019/vm"
)

func TestParse(t *testing.T) {
	data := []struct {
		in  string
		img C
	}{
		{"1,2,3", C{1, 2, 3}},
		{"1,2,3\n", C{1, 2, 3}},
		{" 1 ,\t-2,\n3 ,", C{1, -2, 3}},
		{"1125899906842624,-1125899906842624", C{1125899906842624, -1125899906842624}},
		{"99", C{99}},
		{"", nil},
	}
	for _, d := range data {
		img, err := vm.ParseString(d.in)
		if err != nil {
			t.Errorf("%q: %v", d.in, err)
			continue
		}
		if !equal(img, d.img) {
			t.Errorf("%q: expected %v, got %v", d.in, d.img, img)
		}
	}

	for _, in := range []string{"1,,2", "1,x,3", "1;2", ",", "99999999999999999999"} {
		if _, err := vm.ParseString(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}

func TestImageString(t *testing.T) {
	img := vm.Image{1, -2, 1 << 50, 0}
	s := img.String()
	if s != "1,-2,1125899906842624,0" {
		t.Fatalf("got %q", s)
	}
	var b bytes.Buffer
	n, err := img.WriteTo(&b)
	if err != nil || n != int64(len(s)) || b.String() != s {
		t.Errorf("WriteTo: %d, %v, %q", n, err, b.String())
	}
}

func TestSaveLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "prog.txt")
	img := vm.Image{109, 1, 204, -1, 99}
	if err := img.Save(name); err != nil {
		t.Fatalf("%+v", err)
	}
	got, err := vm.Load(name)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !equal(got, img) {
		t.Errorf("expected %v, got %v", img, got)
	}

	if _, err = vm.Load(filepath.Join(t.TempDir(), "missing")); !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("expected not exist error, got %v", err)
	}
}
