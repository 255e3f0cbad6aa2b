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

package vm

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Image is an Intcode program image: the initial contents of memory, starting
// at address 0.
type Image []Cell

func (img Image) at(addr Cell) Cell {
	if addr < 0 || addr >= Cell(len(img)) {
		return 0
	}
	return img[addr]
}

// Parse reads a program image from r. The image is a comma separated list of
// signed integers. White space around values is ignored, and so is a trailing
// comma.
func Parse(r io.Reader) (Image, error) {
	br := bufio.NewReader(r)
	var img Image
	for {
		s, rerr := br.ReadString(',')
		if rerr != nil && rerr != io.EOF {
			return nil, errors.Wrap(rerr, "read failed")
		}
		s = strings.TrimSpace(strings.TrimSuffix(s, ","))
		if s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "cell %d", len(img))
			}
			img = append(img, Cell(v))
		} else if rerr == nil {
			return nil, errors.Errorf("cell %d: empty value", len(img))
		}
		if rerr == io.EOF {
			return img, nil
		}
	}
}

// ParseString parses a program image from a string. See Parse.
func ParseString(s string) (Image, error) {
	return Parse(strings.NewReader(s))
}

// Load loads a program image from file fileName.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %v", fileName)
	}
	return img, nil
}

// WriteTo writes the image to w in the format accepted by Parse.
func (img Image) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriter(w)
	var b []byte
	for k, v := range img {
		b = b[:0]
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		nn, werr := bw.Write(b)
		n += int64(nn)
		if werr != nil {
			return n, errors.Wrap(werr, "write failed")
		}
	}
	return n, errors.Wrap(bw.Flush(), "write failed")
}

// Save writes the image to file fileName.
func (img Image) Save(fileName string) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrap(cerr, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	_, err = img.WriteTo(f)
	return err
}

func (img Image) String() string {
	var sb strings.Builder
	img.WriteTo(&sb)
	return sb.String()
}
