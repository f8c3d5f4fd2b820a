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

package action

import (
	"errors"
	"fmt"
	"time"

	"github.com/openSUSE/measure-pcr-validator/pkg/constants"
	"github.com/openSUSE/measure-pcr-validator/pkg/crypttab"
	validatorError "github.com/openSUSE/measure-pcr-validator/pkg/error"
	"github.com/openSUSE/measure-pcr-validator/pkg/signature"
	"github.com/openSUSE/measure-pcr-validator/pkg/tpm"
	"github.com/openSUSE/measure-pcr-validator/pkg/types"
	"github.com/openSUSE/measure-pcr-validator/pkg/ui"
	"github.com/openSUSE/measure-pcr-validator/pkg/utils"
)

type outcomeCode int

const (
	// the check is satisfied, keep going
	pass outcomeCode = iota
	// validation does not apply to this boot at all
	skip
	// resolve against the override policy
	fail
)

// outcome is the tagged result of a single validation check. hard marks
// failures the boot parameter override can never suppress.
type outcome struct {
	code   outcomeCode
	reason string
	hard   bool
}

type checkFn func() outcome

type validator struct {
	cfg  *types.RunConfig
	spec *types.ValidateSpec

	// loaded by the artifact check, consumed by the later ones
	prediction []byte
}

// RunValidate gates the TPM2 protected volume unlock on the current
// measurement matching the signed prediction. It runs the ordered
// checks as a left to right fold over tagged outcomes, resolves
// failures against the boot parameter override and executes the halt
// sequence on hard failure.
func RunValidate(cfg *types.RunConfig, spec *types.ValidateSpec) error {
	v := &validator{cfg: cfg, spec: spec}

	checks := []checkFn{
		v.checkPolicy,
		v.checkArtifacts,
		v.checkSignature,
		v.checkMeasurement,
	}

	for _, check := range checks {
		out := check()
		switch out.code {
		case skip:
			cfg.Logger.Info("No PCR validation")
			return nil
		case fail:
			return v.resolve(out)
		}
	}

	cfg.Logger.Info("PCR measurement accepted")
	return nil
}

// checkPolicy inspects the encrypted volume registry. Validation only
// applies when at least one volume carries the gating option, and this
// opt-out is evaluated before any artifact check.
func (v *validator) checkPolicy() outcome {
	entries, err := crypttab.Parse(v.cfg.Fs, v.spec.CrypttabPath)
	if err != nil {
		v.cfg.Logger.Warnf("Unreadable crypttab '%s': %s", v.spec.CrypttabPath, err.Error())
		return outcome{code: skip}
	}
	if !crypttab.AnyRequiresMeasurement(entries, constants.MeasurePCROption) {
		return outcome{code: skip}
	}
	v.cfg.Logger.Debugf("Measurement validation requested by '%s'", v.spec.CrypttabPath)
	return outcome{code: pass}
}

// checkArtifacts loads the prediction allow-list. Transient read
// failures count as absence, a single evaluation per boot is
// definitive.
func (v *validator) checkArtifacts() outcome {
	data, err := v.cfg.Fs.ReadFile(v.spec.PredictionPath)
	if err != nil {
		return outcome{code: fail, reason: "Missing prediction file"}
	}
	v.prediction = data
	return outcome{code: pass}
}

// checkSignature authenticates the prediction before trusting it. An
// absent signature and key pair is tolerable infrastructure, a present
// but failing signature never is.
func (v *validator) checkSignature() outcome {
	sigExists, _ := utils.Exists(v.cfg.Fs, v.spec.SignaturePath)
	keyExists, _ := utils.Exists(v.cfg.Fs, v.spec.PublicKeyPath)
	if !sigExists || !keyExists {
		return outcome{code: fail, reason: "Missing prediction signature"}
	}

	verifier, err := signature.NewVerifier(v.cfg.Fs, v.spec.PublicKeyPath)
	if err != nil {
		if errors.Is(err, signature.ErrSignatureMissing) {
			return outcome{code: fail, reason: "Missing prediction signature"}
		}
		return outcome{code: fail, reason: "Invalid prediction signature", hard: true}
	}

	sig, err := v.cfg.Fs.ReadFile(v.spec.SignaturePath)
	if err != nil {
		return outcome{code: fail, reason: "Missing prediction signature"}
	}

	if err = verifier.Verify(v.prediction, sig); err != nil {
		return outcome{code: fail, reason: "Invalid prediction signature", hard: true}
	}
	v.cfg.Logger.Debug("Prediction signature verified")
	return outcome{code: pass}
}

// checkMeasurement reads the current register value and matches it
// against the allow-list
func (v *validator) checkMeasurement() outcome {
	reader := tpm.NewChainReader(
		tpm.NewSysfsReader(v.cfg.Fs, v.cfg.Logger, v.spec.SysTpmDir, v.spec.PCRIndex),
		tpm.NewDeviceReader(v.cfg.Logger, v.spec.TpmDevice, v.spec.PCRIndex),
	)

	current, err := reader.ReadCurrent()
	if err != nil {
		v.cfg.Logger.Errorf("Failed reading PCR %d: %s", v.spec.PCRIndex, err.Error())
		return outcome{code: fail, reason: "TPM not available", hard: true}
	}

	if !tpm.IsAccepted(current, v.prediction) {
		return outcome{
			code:   fail,
			reason: fmt.Sprintf("PCR %d measurement does not match the prediction", v.spec.PCRIndex),
		}
	}
	return outcome{code: pass}
}

// resolve maps a failed check to the final behavior. The override
// downgrades missing-artifact and mismatch failures to warnings, hard
// failures always halt.
func (v *validator) resolve(out outcome) error {
	if v.cfg.Ignore && !out.hard {
		v.cfg.Logger.Warnf("%s, continuing due to '%s'", out.reason, constants.IgnoreBootParam)
		return nil
	}
	return v.haltSequence(out.reason)
}

// haltSequence coordinates the operator visible alert and the bounded
// wait before asking the init process to halt. The wait lets the
// operator finish reading, it never cancels the halt.
func (v *validator) haltSequence(reason string) error {
	v.cfg.Logger.Error(reason)

	if err := v.cfg.Alert.StartAlert(); err != nil {
		v.cfg.Logger.Warnf("Failed signaling the init process: %s", err.Error())
	}
	time.Sleep(v.spec.BannerPause)

	ui.Banner(v.cfg.Stdout, reason, constants.IgnoreBootParam)
	if ui.WaitForOperator(v.cfg.Stdin, v.spec.OperatorWindow) {
		v.cfg.Logger.Debug("Operator acknowledged the failure notice")
	}

	if err := v.cfg.Alert.ResolveAndHalt(); err != nil {
		v.cfg.Logger.Warnf("Failed requesting the halt: %s", err.Error())
	}
	return validatorError.New(reason, validatorError.ValidationFailed)
}
