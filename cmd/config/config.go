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
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/openSUSE/measure-pcr-validator/pkg/config"
	"github.com/openSUSE/measure-pcr-validator/pkg/constants"
	"github.com/openSUSE/measure-pcr-validator/pkg/types"
)

// Durations in yaml files, sysconfig lines and env variables come in as
// strings like "10s"
var decodeHook = viper.DecodeHook(
	mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	),
)

// ReadConfigRun builds the runtime configuration from defaults, the
// sysconfig defaults file, the optional config dir, environment
// variables and flags, in that precedence order
func ReadConfigRun(configDir string, flags *pflag.FlagSet, opts ...config.GenericOptions) (*types.RunConfig, error) {
	cfg := config.NewRunConfig(opts...)

	configLogger(cfg.Logger, cfg.Fs)

	// Sysconfig defaults are plain KEY=value lines, surfaced as env
	// variables so viper merges them with everything else
	if _, err := os.Stat(constants.SysconfigPath); err == nil {
		_ = godotenv.Load(constants.SysconfigPath)
	}

	if configDir != "" {
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName(constants.ConfigFile)
		// If a config file is found, read it in.
		_ = viper.MergeInConfig()
	}

	// Set the prefix for vars so we get only the ones starting with MEASURE_PCR
	viper.SetEnvPrefix("MEASURE_PCR")
	replacer := strings.NewReplacer("-", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv() // read in environment variables that match

	if flags != nil {
		_ = viper.BindPFlags(flags)
	}

	// NewRunConfig resolved the override from the kernel cmdline, keep
	// it across the unmarshal so flag and config defaults cannot mask a
	// parameter the operator passed
	fromCmdline := cfg.Ignore

	// unmarshal all the vars into the config object
	if err := viper.Unmarshal(cfg, decodeHook); err != nil {
		return cfg, err
	}

	// Config sources can only add to the override, never disable it
	if fromCmdline || viper.GetBool("ignore") {
		cfg.Ignore = true
	}

	if types.IsDebugLevel(cfg.Logger) {
		cfg.Logger.Debugf("Full config loaded: %s", litter.Sdump(cfg))
	}

	return cfg, nil
}

// ReadValidateSpec returns a ValidateSpec from defaults overlaid with
// any matching viper keys
func ReadValidateSpec(cfg *types.RunConfig, flags *pflag.FlagSet) (*types.ValidateSpec, error) {
	spec := config.NewValidateSpec()

	if flags != nil {
		_ = viper.BindPFlags(flags)
	}
	if err := viper.Unmarshal(spec, decodeHook); err != nil {
		return nil, err
	}

	if types.IsDebugLevel(cfg.Logger) {
		cfg.Logger.Debugf("Loaded validate spec: %s", litter.Sdump(spec))
	}
	return spec, nil
}

// ReadHmacSpec returns an HmacSpec resolved from defaults and flags
func ReadHmacSpec(cfg *types.RunConfig, flags *pflag.FlagSet) (*types.HmacSpec, error) {
	spec := config.NewHmacSpec()

	if flags != nil {
		_ = viper.BindPFlags(flags)
	}
	if err := viper.Unmarshal(spec, decodeHook); err != nil {
		return nil, err
	}

	if types.IsDebugLevel(cfg.Logger) {
		cfg.Logger.Debugf("Loaded hmac spec: %s", litter.Sdump(spec))
	}
	return spec, nil
}

func configLogger(log types.Logger, vfs types.FS) {
	// Set debug level
	if viper.GetBool("debug") {
		log.SetLevel(types.DebugLevel())
	}

	// Set formatter so both file and stdout format are equal
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      true,
		DisableColors:    false,
		DisableTimestamp: false,
		FullTimestamp:    true,
	})

	// Logfile
	logfile := viper.GetString("logfile")
	if logfile != "" {
		o, err := vfs.OpenFile(logfile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, os.ModePerm)

		if err != nil {
			log.Errorf("Could not open %s for logging to file: %s", logfile, err.Error())
			log.SetOutput(os.Stdout)
		} else if viper.GetBool("quiet") { // if quiet is set, only set the log to the file
			log.SetOutput(o)
		} else { // else set it to both stdout and the file
			mw := io.MultiWriter(os.Stdout, o)
			log.SetOutput(mw)
		}
	} else { // no logfile
		if viper.GetBool("quiet") { // quiet is enabled so discard all logging
			log.SetOutput(io.Discard)
		} else { // default to stdout
			log.SetOutput(os.Stdout)
		}
	}
}
