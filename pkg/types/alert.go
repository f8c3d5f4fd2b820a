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

package types

import (
	"syscall"

	"github.com/openSUSE/measure-pcr-validator/pkg/constants"
)

// Libc reserves the first two kernel real time signals for the
// threading implementation, so SIGRTMIN resolves to 34 on Linux.
const sigrtmin = 34

// AlertChannel is the handoff to the init process on hard failures.
// StartAlert claims the console for the failure banner, ResolveAndHalt
// hands control back and requests the halt. The actual halt mechanics
// belong to the init system.
type AlertChannel interface {
	StartAlert() error
	ResolveAndHalt() error
}

// InitChannel delivers the alert handoff as real time signals to PID 1
type InitChannel struct {
	Syscall SyscallInterface
}

func NewInitChannel(sys SyscallInterface) *InitChannel {
	return &InitChannel{Syscall: sys}
}

func (i *InitChannel) StartAlert() error {
	return i.Syscall.Kill(1, syscall.Signal(sigrtmin+constants.StartAlertSigOffset))
}

func (i *InitChannel) ResolveAndHalt() error {
	return i.Syscall.Kill(1, syscall.Signal(sigrtmin+constants.HaltSigOffset))
}
