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

package mocks

import "errors"

// FakeAlertChannel records the init process handoff without delivering
// real signals
type FakeAlertChannel struct {
	AlertCalls   int
	HaltCalls    int
	ErrorOnAlert bool
	ErrorOnHalt  bool
}

func (f *FakeAlertChannel) StartAlert() error {
	f.AlertCalls++
	if f.ErrorOnAlert {
		return errors.New("alert error")
	}
	return nil
}

func (f *FakeAlertChannel) ResolveAndHalt() error {
	f.HaltCalls++
	if f.ErrorOnHalt {
		return errors.New("halt error")
	}
	return nil
}
