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

package crypttab

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/openSUSE/measure-pcr-validator/pkg/types"
)

// Entry is a single line of the encrypted volume registry. Options is
// the raw comma separated fourth field.
type Entry struct {
	Name     string
	Device   string
	Password string
	Options  []string
}

// Bool evaluates a boolean crypttab option, honoring both the bare
// 'opt' form and the 'opt=yes|no' form
func (e Entry) Bool(opt string) bool {
	for _, o := range e.Options {
		key, value, found := strings.Cut(o, "=")
		if key != opt {
			continue
		}
		if !found {
			return true
		}
		switch strings.ToLower(value) {
		case "yes", "true", "1", "on":
			return true
		default:
			return false
		}
	}
	return false
}

// Parse reads a crypttab file. Comments and blank lines are skipped,
// short lines keep their missing fields empty. A missing file is not an
// error, it reports an empty registry.
func Parse(fs types.FS, path string) ([]Entry, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}

	entries := []Entry{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		entry := Entry{Name: fields[0]}
		if len(fields) > 1 {
			entry.Device = fields[1]
		}
		if len(fields) > 2 {
			entry.Password = fields[2]
		}
		if len(fields) > 3 {
			entry.Options = strings.Split(fields[3], ",")
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

// AnyRequiresMeasurement reports whether at least one registered volume
// opted into measurement validation before unlock
func AnyRequiresMeasurement(entries []Entry, opt string) bool {
	for _, e := range entries {
		if e.Bool(opt) {
			return true
		}
	}
	return false
}
