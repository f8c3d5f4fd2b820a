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

package config_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/twpayne/go-vfs/v4"
	"github.com/twpayne/go-vfs/v4/vfst"

	cmdconfig "github.com/openSUSE/measure-pcr-validator/cmd/config"
	"github.com/openSUSE/measure-pcr-validator/pkg/config"
	"github.com/openSUSE/measure-pcr-validator/pkg/types"
)

func TestCmdConfigSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "CLI config test suite")
}

var _ = Describe("ReadConfigRun", Label("config", "cmd"), func() {
	var fs vfs.FS
	var cleanup func()
	var flags *pflag.FlagSet

	BeforeEach(func() {
		viper.Reset()
		// same flag the validate command registers
		flags = pflag.NewFlagSet("validate", pflag.ContinueOnError)
		flags.Bool("ignore", false, "")
	})
	AfterEach(func() {
		if cleanup != nil {
			cleanup()
		}
	})

	It("keeps the cmdline sourced override across flag binding and unmarshal", func() {
		fs, cleanup, _ = vfst.NewTestFS(map[string]interface{}{
			"/proc/cmdline": "root=/dev/sda2 measure-pcr-validator.ignore\n",
		})
		cfg, err := cmdconfig.ReadConfigRun("", flags,
			config.WithFs(fs), config.WithLogger(types.NewNullLogger()))
		Expect(err).To(BeNil())
		Expect(cfg.Ignore).To(BeTrue())
	})
	It("enables the override from the flag alone", func() {
		fs, cleanup, _ = vfst.NewTestFS(map[string]interface{}{
			"/proc/cmdline": "root=/dev/sda2\n",
		})
		Expect(flags.Set("ignore", "true")).To(Succeed())
		cfg, err := cmdconfig.ReadConfigRun("", flags,
			config.WithFs(fs), config.WithLogger(types.NewNullLogger()))
		Expect(err).To(BeNil())
		Expect(cfg.Ignore).To(BeTrue())
	})
	It("leaves the override unset with neither source", func() {
		fs, cleanup, _ = vfst.NewTestFS(map[string]interface{}{
			"/proc/cmdline": "root=/dev/sda2\n",
		})
		cfg, err := cmdconfig.ReadConfigRun("", flags,
			config.WithFs(fs), config.WithLogger(types.NewNullLogger()))
		Expect(err).To(BeNil())
		Expect(cfg.Ignore).To(BeFalse())
	})
})
