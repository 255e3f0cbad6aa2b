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

// DefaultIdleThreshold is the default number of consecutive idle ticks after
// which a node is considered idle.
const DefaultIdleThreshold = 2

// Packet is a message exchanged between network nodes.
type Packet struct {
	Dst  vm.Cell
	X, Y vm.Cell
}

type node struct {
	m     *vm.Instance
	queue []Packet
	out   []vm.Cell
	idle  int
}

// Network is a set of machines, running the same program, that exchange
// packets. Node k is booted by supplying its address k as its first input.
//
// A node sends a packet by outputting three values: the destination address
// and the packet's X and Y values. A node receives a packet as two input
// values, X then Y. When a node needs input and has no packet waiting, it
// receives -1.
//
// Nodes are scheduled round-robin, one Tick at a time: a node runs until it
// needs input again or has sent a packet.
type Network struct {
	// Sink, if not nil, receives packets sent to addresses outside of the
	// network. Such packets are dropped otherwise.
	Sink func(Packet)
	// OnIdle, if not nil, is called whenever all nodes are idle. It may
	// return a packet to inject in the network.
	OnIdle func() (Packet, bool)
	// IdleThreshold is the number of consecutive ticks during which a node
	// must neither send nor receive anything to be considered idle.
	IdleThreshold int

	nodes   []*node
	stopped bool
	ticks   int64
}

// NewNetwork creates a network of n nodes running copies of img.
func NewNetwork(img vm.Image, n int) (*Network, error) {
	if n <= 0 {
		return nil, errors.Errorf("network: invalid size %d", n)
	}
	net := &Network{IdleThreshold: DefaultIdleThreshold}
	for addr := 0; addr < n; addr++ {
		m, err := vm.New(img, vm.Input(vm.Cell(addr)))
		if err != nil {
			return nil, err
		}
		net.nodes = append(net.nodes, &node{m: m})
	}
	return net, nil
}

// Size returns the number of nodes in the network.
func (n *Network) Size() int {
	return len(n.nodes)
}

// Ticks returns the number of completed ticks.
func (n *Network) Ticks() int64 {
	return n.ticks
}

// Stop makes Run return after the current tick. It is meant to be called
// from the Sink or OnIdle callbacks.
func (n *Network) Stop() {
	n.stopped = true
}

// Send queues p for delivery to node p.Dst. Packets sent to addresses outside
// of the network go to the Sink.
func (n *Network) Send(p Packet) {
	if p.Dst < 0 || p.Dst >= vm.Cell(len(n.nodes)) {
		log.Debugf("packet to %d: (%d, %d)", p.Dst, p.X, p.Y)
		if n.Sink != nil {
			n.Sink(p)
		}
		return
	}
	nd := n.nodes[p.Dst]
	nd.queue = append(nd.queue, p)
}

// Idle returns true if every node has been idle for at least IdleThreshold
// ticks, no packet is waiting for delivery and no node is halfway through
// sending one.
func (n *Network) Idle() bool {
	for _, nd := range n.nodes {
		if nd.idle < n.IdleThreshold || len(nd.queue) > 0 || len(nd.out) > 0 {
			return false
		}
	}
	return true
}

// tickNode runs node addr until it needs input again or has sent a packet. It
// returns true if the node did output or receive something.
func (n *Network) tickNode(addr int) (active bool, err error) {
	nd := n.nodes[addr]
	m := nd.m
	if !m.Running() {
		return false, nil
	}
	if m.NeedsInput() {
		if len(nd.queue) == 0 {
			m.Supply(-1)
		} else {
			p := nd.queue[0]
			nd.queue = nd.queue[1:]
			m.Supply(p.X, p.Y)
			active = true
		}
	}
	for m.Running() && !m.NeedsInput() {
		if err = m.Step(); err != nil {
			return active, errors.Wrapf(err, "node %d", addr)
		}
		if v, ok := m.Drain(); ok {
			nd.out = append(nd.out, v)
			active = true
		}
		if len(nd.out) == 3 {
			p := Packet{nd.out[0], nd.out[1], nd.out[2]}
			nd.out = nd.out[:0]
			log.Debugf("node %d -> %d: (%d, %d)", addr, p.Dst, p.X, p.Y)
			n.Send(p)
			return true, nil
		}
	}
	return active, nil
}

// Tick gives each running node one turn, in address order. Then, if the whole
// network is idle, it calls OnIdle.
func (n *Network) Tick() error {
	running := 0
	for addr, nd := range n.nodes {
		active, err := n.tickNode(addr)
		if err != nil {
			return err
		}
		if active {
			nd.idle = 0
		} else {
			nd.idle++
		}
		if nd.m.Running() {
			running++
		}
	}
	n.ticks++
	if running == 0 {
		n.stopped = true
		return nil
	}
	if n.OnIdle != nil && n.Idle() {
		if p, ok := n.OnIdle(); ok {
			log.Debugf("network idle after %d ticks, injecting packet to %d: (%d, %d)", n.ticks, p.Dst, p.X, p.Y)
			n.Send(p)
			for _, nd := range n.nodes {
				nd.idle = 0
			}
		}
	}
	return nil
}

// Run ticks the network until Stop is called, all nodes have halted, ctx is
// done or a node faults.
func (n *Network) Run(ctx context.Context) error {
	n.stopped = false
	for !n.stopped {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := n.Tick(); err != nil {
			return err
		}
	}
	return nil
}
