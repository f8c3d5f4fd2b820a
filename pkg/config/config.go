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

package config

import (
	"io"
	"os"

	"github.com/twpayne/go-vfs/v4"

	"github.com/openSUSE/measure-pcr-validator/pkg/constants"
	"github.com/openSUSE/measure-pcr-validator/pkg/types"
	"github.com/openSUSE/measure-pcr-validator/pkg/utils"
)

type GenericOptions func(c *types.Config) error

func WithFs(fs types.FS) func(c *types.Config) error {
	return func(c *types.Config) error {
		c.Fs = fs
		return nil
	}
}

func WithLogger(logger types.Logger) func(c *types.Config) error {
	return func(c *types.Config) error {
		c.Logger = logger
		return nil
	}
}

func WithSyscall(syscall types.SyscallInterface) func(c *types.Config) error {
	return func(c *types.Config) error {
		c.Syscall = syscall
		return nil
	}
}

func WithAlertChannel(alert types.AlertChannel) func(c *types.Config) error {
	return func(c *types.Config) error {
		c.Alert = alert
		return nil
	}
}

func WithStdin(r io.Reader) func(c *types.Config) error {
	return func(c *types.Config) error {
		c.Stdin = r
		return nil
	}
}

func WithStdout(w io.Writer) func(c *types.Config) error {
	return func(c *types.Config) error {
		c.Stdout = w
		return nil
	}
}

func NewConfig(opts ...GenericOptions) *types.Config {
	log := types.NewLogger()

	c := &types.Config{
		Fs:      vfs.OSFS,
		Logger:  log,
		Syscall: &types.RealSyscall{},
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
	}
	for _, o := range opts {
		err := o(c)
		if err != nil {
			log.Errorf("error applying config option: %s", err.Error())
			return nil
		}
	}

	// Delay the alert channel creation so it picks the syscall set by
	// the options instead of blindly binding the default one
	if c.Alert == nil {
		c.Alert = types.NewInitChannel(c.Syscall)
	}

	return c
}

func NewRunConfig(opts ...GenericOptions) *types.RunConfig {
	config := NewConfig(opts...)
	r := &types.RunConfig{
		Config: *config,
	}

	// The override is a boot parameter, resolved once here and never
	// re-derived at each check
	r.Ignore = utils.BootParamBool(r.Fs, constants.KernelCmdlinePath, constants.IgnoreBootParam)

	return r
}

// NewValidateSpec returns a ValidateSpec based on defaults
func NewValidateSpec() *types.ValidateSpec {
	return &types.ValidateSpec{
		CrypttabPath:   constants.CrypttabPath,
		PredictionPath: constants.PredictionPath,
		SignaturePath:  constants.SignaturePath,
		PublicKeyPath:  constants.PublicKeyPath,
		SysTpmDir:      constants.SysTpmDir,
		TpmDevice:      constants.TpmDevice,
		PCRIndex:       constants.MeasuredPCR,
		BannerPause:    constants.BannerPause,
		OperatorWindow: constants.OperatorWindow,
	}
}

// NewHmacSpec returns an HmacSpec based on defaults
func NewHmacSpec() *types.HmacSpec {
	return &types.HmacSpec{
		Digest: "sha256",
	}
}
