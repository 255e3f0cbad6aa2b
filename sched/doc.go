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

// Package sched runs several Intcode machines cooperatively from a single
// goroutine.
//
// Machines never share state: schedulers only move values between the input
// and output queues of the machines they own, in a fixed order.
package sched

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("intcode.sched")
