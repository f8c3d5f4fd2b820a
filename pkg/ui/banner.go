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

package ui

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const bell = "\a"

// Banner renders the bordered high visibility failure notice with the
// literal reason and the override instructions, plus an audible alert
func Banner(w io.Writer, reason, overrideParam string) {
	lines := []string{
		"TRUSTED MEASUREMENT VALIDATION FAILED",
		"",
		reason,
		"",
		"The system will halt. To bypass this check reboot with",
		fmt.Sprintf("'%s' on the kernel command line.", overrideParam),
	}

	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}

	border := "+" + strings.Repeat("=", width+2) + "+"
	fmt.Fprintln(w, bell)
	fmt.Fprintln(w, border)
	for _, l := range lines {
		fmt.Fprintf(w, "| %-*s |\n", width, l)
	}
	fmt.Fprintln(w, border)
}

// WaitForOperator opens the bounded reading window. Any keypress ends
// the wait early, purely to let the operator finish reading, the window
// never cancels the halt. The hard timeout keeps unattended boots from
// hanging. Returns true if a key was pressed within the window.
func WaitForOperator(r io.Reader, timeout time.Duration) bool {
	pressed := make(chan struct{})
	go func() {
		buf := make([]byte, 1)
		// the reader goroutine may outlive the window, the process
		// exits right after anyway
		if _, err := r.Read(buf); err == nil {
			close(pressed)
		}
	}()

	select {
	case <-pressed:
		return true
	case <-time.After(timeout):
		return false
	}
}
