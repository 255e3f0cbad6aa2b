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

package ierr_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/wieslander/aoc-2019/internal/ierr"
)

type failWriter struct {
	n int
}

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, io.ErrShortWrite
	}
	w.n--
	return len(p), nil
}

func TestErrWriter(t *testing.T) {
	var b bytes.Buffer
	ew := ierr.NewErrWriter(&b)
	io.WriteString(ew, "hello")
	if ew.Err != nil || b.String() != "hello" {
		t.Errorf("got %q, err %v", b.String(), ew.Err)
	}
	if ierr.NewErrWriter(ew) != ew {
		t.Error("NewErrWriter did not reuse an existing ErrWriter")
	}

	ew = ierr.NewErrWriter(&failWriter{1})
	if _, err := ew.WriteString("a"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := ew.WriteString("b"); errors.Cause(err) != io.ErrShortWrite {
		t.Fatalf("expected short write, got %v", err)
	}
	if n, err := ew.WriteString("c"); n != 0 || errors.Cause(err) != io.ErrShortWrite {
		t.Errorf("error is not sticky: n=%d, err=%v", n, err)
	}
}
