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

package crypttab_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/twpayne/go-vfs/v4"
	"github.com/twpayne/go-vfs/v4/vfst"

	"github.com/openSUSE/measure-pcr-validator/pkg/crypttab"
)

func TestCrypttabSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Crypttab test suite")
}

const crypttabSample = `# /etc/crypttab
cr_root /dev/disk/by-uuid/00000000-0000-0000-0000-000000000001 none x-initrd.attach,tpm2-device=auto,tpm2-measure-pcr=yes

cr_home /dev/disk/by-uuid/00000000-0000-0000-0000-000000000002 /etc/cryptkey luks
`

var _ = Describe("Crypttab", Label("crypttab"), func() {
	var fs vfs.FS
	var cleanup func()

	AfterEach(func() {
		if cleanup != nil {
			cleanup()
		}
	})

	Describe("Parse", func() {
		It("parses entries, skipping comments and blank lines", func() {
			fs, cleanup, _ = vfst.NewTestFS(map[string]interface{}{
				"/etc/crypttab": crypttabSample,
			})
			entries, err := crypttab.Parse(fs, "/etc/crypttab")
			Expect(err).To(BeNil())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].Name).To(Equal("cr_root"))
			Expect(entries[0].Options).To(ContainElement("tpm2-device=auto"))
			Expect(entries[1].Password).To(Equal("/etc/cryptkey"))
		})
		It("keeps missing fields empty on short lines", func() {
			fs, cleanup, _ = vfst.NewTestFS(map[string]interface{}{
				"/etc/crypttab": "cr_data /dev/sda3\n",
			})
			entries, err := crypttab.Parse(fs, "/etc/crypttab")
			Expect(err).To(BeNil())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Device).To(Equal("/dev/sda3"))
			Expect(entries[0].Password).To(BeEmpty())
			Expect(entries[0].Options).To(BeEmpty())
		})
		It("reports an empty registry for a missing file", func() {
			fs, cleanup, _ = vfst.NewTestFS(map[string]interface{}{})
			entries, err := crypttab.Parse(fs, "/etc/crypttab")
			Expect(err).To(BeNil())
			Expect(entries).To(BeEmpty())
		})
	})

	Describe("Bool", func() {
		It("honors bare and valued option forms", func() {
			e := crypttab.Entry{Options: []string{"tpm2-measure-pcr"}}
			Expect(e.Bool("tpm2-measure-pcr")).To(BeTrue())

			e = crypttab.Entry{Options: []string{"tpm2-measure-pcr=yes"}}
			Expect(e.Bool("tpm2-measure-pcr")).To(BeTrue())

			e = crypttab.Entry{Options: []string{"tpm2-measure-pcr=no"}}
			Expect(e.Bool("tpm2-measure-pcr")).To(BeFalse())

			e = crypttab.Entry{Options: []string{"tpm2-device=auto"}}
			Expect(e.Bool("tpm2-measure-pcr")).To(BeFalse())
		})
	})

	Describe("AnyRequiresMeasurement", func() {
		It("detects the gating option on any entry", func() {
			entries := []crypttab.Entry{
				{Name: "cr_home", Options: []string{"luks"}},
				{Name: "cr_root", Options: []string{"tpm2-measure-pcr=yes"}},
			}
			Expect(crypttab.AnyRequiresMeasurement(entries, "tpm2-measure-pcr")).To(BeTrue())
		})
		It("reports false on an empty registry", func() {
			Expect(crypttab.AnyRequiresMeasurement(nil, "tpm2-measure-pcr")).To(BeFalse())
		})
	})
})
