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

package tpm

import (
	"strings"
)

// IsAccepted reports whether the current register value matches one
// whole line of the prediction. Comparison is case sensitive and does
// no normalization, only the artifact's single trailing newline is
// tolerated. Each line is an acceptable measured state, any match
// accepts.
func IsAccepted(current string, prediction []byte) bool {
	lines := strings.Split(strings.TrimSuffix(string(prediction), "\n"), "\n")
	for _, line := range lines {
		if current == line {
			return true
		}
	}
	return false
}
