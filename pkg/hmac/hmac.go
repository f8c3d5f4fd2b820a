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

package hmac

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/openSUSE/measure-pcr-validator/pkg/types"
)

var digests = map[string]func() hash.Hash{
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha384": sha512.New384,
	"sha512": sha512.New,
}

// Sum computes the HMAC of the message with the secret key stored as a
// hex string at keyPath, and returns it hex encoded. Digest selects the
// underlying hash among sha1, sha256, sha384 and sha512.
func Sum(fs types.FS, keyPath, digest string, message io.Reader) (string, error) {
	newHash, ok := digests[digest]
	if !ok {
		return "", fmt.Errorf("unsupported digest '%s'", digest)
	}

	keyData, err := fs.ReadFile(keyPath)
	if err != nil {
		return "", fmt.Errorf("reading key file: %w", err)
	}
	key, err := hex.DecodeString(strings.TrimSpace(string(keyData)))
	if err != nil {
		return "", fmt.Errorf("key is not a valid hex string: %w", err)
	}

	mac := hmac.New(newHash, key)
	if _, err = io.Copy(mac, message); err != nil {
		return "", fmt.Errorf("reading message: %w", err)
	}

	return hex.EncodeToString(mac.Sum(nil)), nil
}
