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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openSUSE/measure-pcr-validator/cmd/config"
	"github.com/openSUSE/measure-pcr-validator/pkg/action"
	validatorError "github.com/openSUSE/measure-pcr-validator/pkg/error"
)

func NewValidateCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "validate",
		Args:  cobra.ExactArgs(0),
		Short: "Validate the current PCR measurement against the signed prediction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.ReadConfigRun(viper.GetString("config-dir"), cmd.Flags())
			if err != nil {
				cfg.Logger.Errorf("Error reading config: %s\n", err)
				return validatorError.NewFromError(err, validatorError.ReadingRunConfig)
			}

			cmd.SilenceUsage = true
			spec, err := config.ReadValidateSpec(cfg, cmd.Flags())
			if err != nil {
				cfg.Logger.Errorf("Error reading spec: %s\n", err)
				return validatorError.NewFromError(err, validatorError.ReadingSpecConfig)
			}

			cfg.Logger.Info("Validating PCR measurement...")
			return action.RunValidate(cfg, spec)
		},
	}
	root.AddCommand(c)
	c.Flags().Bool("ignore", false, "Downgrade tolerable validation failures to warnings")
	return c
}

var _ = NewValidateCmd(rootCmd)
