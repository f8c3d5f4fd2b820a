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

package tpm

import (
	"encoding/hex"
	"fmt"

	"github.com/google/go-tpm/legacy/tpm2"
	"github.com/hashicorp/go-multierror"

	"github.com/openSUSE/measure-pcr-validator/pkg/constants"
	"github.com/openSUSE/measure-pcr-validator/pkg/types"
)

var deviceAlgs = map[string]tpm2.Algorithm{
	"sha1":   tpm2.AlgSHA1,
	"sha256": tpm2.AlgSHA256,
	"sha384": tpm2.AlgSHA384,
	"sha512": tpm2.AlgSHA512,
}

// DeviceReader reads the monitored PCR straight from the TPM resource
// manager device. Used as fallback on kernels that do not expose the
// per bank sysfs register files.
type DeviceReader struct {
	Logger types.Logger
	Device string
	Index  int
}

func NewDeviceReader(logger types.Logger, device string, index int) *DeviceReader {
	return &DeviceReader{Logger: logger, Device: device, Index: index}
}

func (d *DeviceReader) ReadCurrent() (string, error) {
	rw, err := tpm2.OpenTPM(d.Device)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %s", ErrTpmUnavailable, d.Device, err.Error())
	}
	defer rw.Close()

	var errs error
	for _, bank := range constants.PCRBanks {
		digest, err := tpm2.ReadPCR(rw, d.Index, deviceAlgs[bank])
		if err != nil {
			d.Logger.Debugf("Failed reading PCR bank %s from %s: %s", bank, d.Device, err.Error())
			errs = multierror.Append(errs, fmt.Errorf("bank %s: %w", bank, err))
			continue
		}
		d.Logger.Debugf("Read PCR %d from device bank %s", d.Index, bank)
		return hex.EncodeToString(digest), nil
	}

	return "", fmt.Errorf("%w: %s", ErrTpmUnavailable, errs.Error())
}
