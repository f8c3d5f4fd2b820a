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

package utils

import (
	"strings"

	"github.com/openSUSE/measure-pcr-validator/pkg/types"
)

// ParseKernelCmdline splits the kernel command line into parameters.
// Bare parameters map to an empty string. Quoting is not part of the
// kernel grammar for the parameters we care about, so fields are plain
// whitespace separated tokens.
func ParseKernelCmdline(fs types.FS, path string) (map[string]string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	params := map[string]string{}
	for _, field := range strings.Fields(string(data)) {
		key, value, _ := strings.Cut(field, "=")
		params[key] = value
	}
	return params, nil
}

// BootParamBool evaluates a boolean kernel parameter. A bare parameter
// counts as enabled, otherwise common boolean spellings are honored.
// Absent or unreadable command lines report the parameter as unset.
func BootParamBool(fs types.FS, path, name string) bool {
	params, err := ParseKernelCmdline(fs, path)
	if err != nil {
		return false
	}

	value, ok := params[name]
	if !ok {
		return false
	}
	switch strings.ToLower(value) {
	case "", "1", "yes", "true", "on":
		return true
	default:
		return false
	}
}
