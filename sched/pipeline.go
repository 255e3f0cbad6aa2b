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

package sched

import (
	"context"

	"github.com/pkg/errors"
	"github.com/wieslander/aoc-2019/vm"
)

// Pipeline is a chain of machines running the same program. Each machine is
// primed with a phase value, then the output of each machine is fed to the
// next one. In feedback mode, the output of the last machine is fed back to
// the first one until the last machine halts.
type Pipeline struct {
	img      vm.Image
	feedback bool
	stages   []*vm.Instance
}

// NewPipeline returns a new pipeline running copies of img.
func NewPipeline(img vm.Image, feedback bool) *Pipeline {
	return &Pipeline{img: img, feedback: feedback}
}

// Run resets all stages, primes stage k with phases[k] and sends signal to the
// first stage. It returns the last value output by the last stage.
func (p *Pipeline) Run(ctx context.Context, signal vm.Cell, phases ...vm.Cell) (vm.Cell, error) {
	if len(phases) == 0 {
		return 0, errors.New("pipeline: no stages")
	}
	for len(p.stages) < len(phases) {
		p.stages = append(p.stages, new(vm.Instance))
	}
	stages := p.stages[:len(phases)]
	for k, m := range stages {
		m.Reset(p.img)
		m.Supply(phases[k])
	}

	last := stages[len(stages)-1]
	for round := 0; ; round++ {
		if err := ctx.Err(); err != nil {
			return signal, err
		}
		for k, m := range stages {
			if !m.Running() {
				continue
			}
			m.Supply(signal)
			v, ok, err := m.RunUntilOutput()
			if err != nil {
				return signal, errors.Wrapf(err, "pipeline stage %d", k)
			}
			if ok {
				signal = v
			}
		}
		log.Debugf("pipeline %v round %d: signal %d", phases, round, signal)
		if !p.feedback || !last.Running() {
			return signal, nil
		}
	}
}
