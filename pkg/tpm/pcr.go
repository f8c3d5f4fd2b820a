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
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/openSUSE/measure-pcr-validator/pkg/constants"
	"github.com/openSUSE/measure-pcr-validator/pkg/types"
	"github.com/openSUSE/measure-pcr-validator/pkg/utils"
)

// ErrTpmUnavailable reports that no PCR bank could be read on any
// surface. Absence of the hardware root of trust invalidates the whole
// measurement chain, so this is always a hard failure.
var ErrTpmUnavailable = errors.New("no TPM register available")

// Reader yields the current value of the monitored measurement register
type Reader interface {
	ReadCurrent() (string, error)
}

// SysfsReader reads the register files the kernel exposes per digest
// algorithm bank, e.g. /sys/class/tpm/tpm0/pcr-sha256/15
type SysfsReader struct {
	Fs     types.FS
	Logger types.Logger
	Dir    string
	Index  int
}

func NewSysfsReader(fs types.FS, logger types.Logger, dir string, index int) *SysfsReader {
	return &SysfsReader{Fs: fs, Logger: logger, Dir: dir, Index: index}
}

// ReadCurrent iterates the banks in fixed priority order and returns
// the value of the first present and readable register. The same
// measurement reaches every bank, so checking one suffices.
func (r *SysfsReader) ReadCurrent() (string, error) {
	var errs error

	for _, bank := range constants.PCRBanks {
		path := filepath.Join(r.Dir, "pcr-"+bank, strconv.Itoa(r.Index))
		if exists, _ := utils.Exists(r.Fs, path); !exists {
			continue
		}
		value, err := utils.ReadLine(r.Fs, path)
		if err != nil {
			r.Logger.Debugf("Failed reading PCR bank %s: %s", bank, err.Error())
			errs = multierror.Append(errs, fmt.Errorf("bank %s: %w", bank, err))
			continue
		}
		r.Logger.Debugf("Read PCR %d from bank %s", r.Index, bank)
		return value, nil
	}

	if errs == nil {
		errs = fmt.Errorf("no bank exposed under %s", r.Dir)
	}
	return "", fmt.Errorf("%w: %s", ErrTpmUnavailable, errs.Error())
}

// ChainReader tries each reader in order and fails only when all of
// them do
type ChainReader struct {
	Readers []Reader
}

func NewChainReader(readers ...Reader) *ChainReader {
	return &ChainReader{Readers: readers}
}

func (c *ChainReader) ReadCurrent() (string, error) {
	var errs error

	for _, r := range c.Readers {
		value, err := r.ReadCurrent()
		if err == nil {
			return value, nil
		}
		errs = multierror.Append(errs, err)
	}

	if errs == nil {
		errs = errors.New("no readers configured")
	}
	return "", fmt.Errorf("%w: %s", ErrTpmUnavailable, errs.Error())
}
