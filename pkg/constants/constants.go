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

package constants

import (
	"time"
)

const (
	// Encrypted volume registry and the per-volume option requesting
	// measurement validation before unlock
	CrypttabPath     = "/etc/crypttab"
	MeasurePCROption = "tpm2-measure-pcr"

	// Prediction artifacts, written by sdbootutil on each kernel or
	// initrd change
	PredictionPath = "/var/lib/sdbootutil/measure-pcr-prediction"
	SignaturePath  = "/var/lib/sdbootutil/measure-pcr-prediction.sig"
	PublicKeyPath  = "/var/lib/sdbootutil/measure-pcr-public.pem"

	// PCR 15 accumulates the tpm2-measure-pcr crypttab measurements
	MeasuredPCR = 15

	// Hardware register surfaces, sysfs first, raw device as fallback
	SysTpmDir = "/sys/class/tpm/tpm0"
	TpmDevice = "/dev/tpmrm0"

	KernelCmdlinePath = "/proc/cmdline"
	IgnoreBootParam   = "measure-pcr-validator.ignore"

	// Real time signal offsets understood by systemd as PID 1.
	// SIGRTMIN+21 turns off status message output so the failure
	// banner stays on the console, SIGRTMIN+13 requests an immediate
	// halt.
	StartAlertSigOffset = 21
	HaltSigOffset       = 13

	// Pause between the alert signal and the banner, and the bounded
	// window granted to the operator to read it. The window never
	// cancels the halt.
	BannerPause    = 2 * time.Second
	OperatorWindow = 10 * time.Second

	// Optional configuration sources
	SysconfigPath = "/etc/sysconfig/measure-pcr-validator"
	ConfigFile    = "config.yaml"
)

// PCRBanks is the fixed priority order for digest algorithm banks. The
// same measurement is extended to every available bank, so the first
// readable one is authoritative.
var PCRBanks = []string{"sha1", "sha256", "sha384", "sha512"}
