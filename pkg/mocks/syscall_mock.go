/*
Copyright © 2024 - 2025 SUSE LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package mocks

import (
	"errors"
	"syscall"
)

type killCall struct {
	pid int
	sig syscall.Signal
}

type FakeSyscall struct {
	killHistory []killCall // Track calls to kill
	ErrorOnKill bool
}

func (f *FakeSyscall) Kill(pid int, sig syscall.Signal) error {
	f.killHistory = append(f.killHistory, killCall{pid: pid, sig: sig})
	if f.ErrorOnKill {
		return errors.New("kill error")
	}
	return nil
}

func (f *FakeSyscall) WasKillCalledWith(pid int, sig syscall.Signal) bool {
	for _, c := range f.killHistory {
		if c.pid == pid && c.sig == sig {
			return true
		}
	}
	return false
}

func (f *FakeSyscall) KillCalls() int {
	return len(f.killHistory)
}
