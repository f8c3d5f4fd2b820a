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

package signature

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/openSUSE/measure-pcr-validator/pkg/types"
)

var (
	// ErrSignatureMissing reports an absent signature and key pair.
	// Severity is decided by the failure policy, not here.
	ErrSignatureMissing = errors.New("missing prediction signature")

	// ErrSignatureInvalid reports a present but failing signature.
	// This is always a hard failure, the override flag exists to
	// tolerate absent infrastructure, not a broken signature on an
	// artifact that is present.
	ErrSignatureInvalid = errors.New("invalid prediction signature")
)

// Verifier authenticates the prediction artifact against a detached
// signature with a PEM encoded public key
type Verifier struct {
	pub crypto.PublicKey
}

// NewVerifier parses the public key at the given path. A missing key
// file yields ErrSignatureMissing so the caller can resolve the
// severity by policy.
func NewVerifier(fs types.FS, keyPath string) (*Verifier, error) {
	data, err := fs.ReadFile(keyPath)
	if err != nil {
		return nil, ErrSignatureMissing
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in '%s': %w", keyPath, ErrSignatureInvalid)
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %s: %w", err.Error(), ErrSignatureInvalid)
	}

	return &Verifier{pub: pub}, nil
}

// Verify runs the asymmetric digest based check over the prediction's
// raw bytes. Any verification failure maps to ErrSignatureInvalid.
func (v *Verifier) Verify(prediction, signature []byte) error {
	digest := sha256.Sum256(prediction)

	switch key := v.pub.(type) {
	case *rsa.PublicKey:
		if err := rsa.VerifyPKCS1v15(key, crypto.SHA256, digest[:], signature); err != nil {
			return ErrSignatureInvalid
		}
	case *ecdsa.PublicKey:
		if !ecdsa.VerifyASN1(key, digest[:], signature) {
			return ErrSignatureInvalid
		}
	default:
		return fmt.Errorf("unsupported public key type %T: %w", v.pub, ErrSignatureInvalid)
	}
	return nil
}
