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

// provides a custom error interface and exit codes for the validator
package error

// The validation contract is binary for the init system: 0 lets the
// unlock proceed, 1 keeps it gated. Any other code means the validator
// itself could not run.

// Measurement validation failed and the halt sequence was executed
const ValidationFailed = 1

// Error reading the run config
const ReadingRunConfig = 10

// Error reading the validate spec
const ReadingSpecConfig = 11

// Error computing an HMAC
const HmacCompute = 12

// Command needs to run as root
const RequiresRoot = 13

// Unknown error
const Unknown int = 255
