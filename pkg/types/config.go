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
	"io"
	"time"
)

// Config is the struct that includes the shared dependencies of all
// commands. All of them are pluggable so tests can run against virtual
// filesystems and fake init channels.
type Config struct {
	Fs      FS
	Logger  Logger
	Syscall SyscallInterface
	Alert   AlertChannel

	// Console endpoints for the failure banner and the operator-read
	// window
	Stdin  io.Reader
	Stdout io.Writer
}

// RunConfig is the configuration used by the validate command
type RunConfig struct {
	// Ignore reflects the boot parameter override. It downgrades
	// missing-artifact and mismatch failures to warnings, never
	// signature or TPM failures.
	Ignore bool `yaml:"ignore,omitempty" mapstructure:"ignore"`

	Config `yaml:",inline" mapstructure:",squash"`
}

// ValidateSpec carries the paths and tunables of a single validation
// run, constructed once per invocation.
type ValidateSpec struct {
	CrypttabPath   string        `yaml:"crypttab,omitempty" mapstructure:"crypttab"`
	PredictionPath string        `yaml:"prediction,omitempty" mapstructure:"prediction"`
	SignaturePath  string        `yaml:"signature,omitempty" mapstructure:"signature"`
	PublicKeyPath  string        `yaml:"public-key,omitempty" mapstructure:"public-key"`
	SysTpmDir      string        `yaml:"sys-tpm-dir,omitempty" mapstructure:"sys-tpm-dir"`
	TpmDevice      string        `yaml:"tpm-device,omitempty" mapstructure:"tpm-device"`
	PCRIndex       int           `yaml:"pcr-index,omitempty" mapstructure:"pcr-index"`
	BannerPause    time.Duration `yaml:"banner-pause,omitempty" mapstructure:"banner-pause"`
	OperatorWindow time.Duration `yaml:"operator-window,omitempty" mapstructure:"operator-window"`
}

// HmacSpec carries the inputs of the hmac helper command
type HmacSpec struct {
	Digest  string `yaml:"digest,omitempty" mapstructure:"digest"`
	KeyPath string `yaml:"key,omitempty" mapstructure:"key"`
}
