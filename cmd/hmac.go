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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openSUSE/measure-pcr-validator/cmd/config"
	validatorError "github.com/openSUSE/measure-pcr-validator/pkg/error"
	"github.com/openSUSE/measure-pcr-validator/pkg/hmac"
)

func NewHmacCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "hmac",
		Args:  cobra.ExactArgs(0),
		Short: "Compute the HMAC of stdin with a hex encoded key file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.ReadConfigRun(viper.GetString("config-dir"), cmd.Flags())
			if err != nil {
				cfg.Logger.Errorf("Error reading config: %s\n", err)
				return validatorError.NewFromError(err, validatorError.ReadingRunConfig)
			}

			cmd.SilenceUsage = true
			spec, err := config.ReadHmacSpec(cfg, cmd.Flags())
			if err != nil {
				cfg.Logger.Errorf("Error reading spec: %s\n", err)
				return validatorError.NewFromError(err, validatorError.ReadingSpecConfig)
			}

			sum, err := hmac.Sum(cfg.Fs, spec.KeyPath, spec.Digest, cfg.Stdin)
			if err != nil {
				cfg.Logger.Errorf("Error computing HMAC: %s\n", err)
				return validatorError.NewFromError(err, validatorError.HmacCompute)
			}

			fmt.Fprintln(cfg.Stdout, sum)
			return nil
		},
	}
	root.AddCommand(c)
	c.Flags().String("digest", "sha256", "Digest used to calculate the HMAC (sha1, sha256, sha384, sha512)")
	c.Flags().String("key", "", "File with the secret key as a hex string")
	_ = c.MarkFlagRequired("key")
	return c
}

var _ = NewHmacCmd(rootCmd)
