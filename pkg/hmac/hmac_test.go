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

package hmac_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/twpayne/go-vfs/v4"
	"github.com/twpayne/go-vfs/v4/vfst"

	"github.com/openSUSE/measure-pcr-validator/pkg/hmac"
)

func TestHmacSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "HMAC test suite")
}

var _ = Describe("HMAC", Label("hmac"), func() {
	var fs vfs.FS
	var cleanup func()

	BeforeEach(func() {
		// RFC 4231 test case 2 key ("Jefe")
		fs, cleanup, _ = vfst.NewTestFS(map[string]interface{}{
			"/etc/hmac.key": "4a656665\n",
		})
	})
	AfterEach(func() {
		cleanup()
	})

	It("computes the RFC 4231 sha256 test vector", func() {
		sum, err := hmac.Sum(fs, "/etc/hmac.key", "sha256", strings.NewReader("what do ya want for nothing?"))
		Expect(err).To(BeNil())
		Expect(sum).To(Equal("5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"))
	})
	It("computes the RFC 4231 sha512 test vector", func() {
		sum, err := hmac.Sum(fs, "/etc/hmac.key", "sha512", strings.NewReader("what do ya want for nothing?"))
		Expect(err).To(BeNil())
		Expect(sum).To(Equal("164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea250554" +
			"9758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737"))
	})
	It("rejects unknown digests", func() {
		_, err := hmac.Sum(fs, "/etc/hmac.key", "md5", strings.NewReader("data"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("unsupported digest"))
	})
	It("rejects keys that are not hex strings", func() {
		Expect(fs.WriteFile("/etc/hmac.key", []byte("not-hex"), 0600)).To(Succeed())
		_, err := hmac.Sum(fs, "/etc/hmac.key", "sha256", strings.NewReader("data"))
		Expect(err).To(HaveOccurred())
	})
	It("errors on a missing key file", func() {
		_, err := hmac.Sum(fs, "/etc/missing.key", "sha256", strings.NewReader("data"))
		Expect(err).To(HaveOccurred())
	})
})
