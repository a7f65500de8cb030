// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/goplast/nls"
	"github.com/cpmech/gosl/io"
)

// ConfigError reports an invalid model configuration (fatal at setup)
type ConfigError struct {
	Model string // model name
	Err   error  // cause
}

// Error implements error
func (o *ConfigError) Error() string {
	return io.Sf("%s: invalid configuration: %v", o.Model, o.Err)
}

// Unwrap returns the cause
func (o *ConfigError) Unwrap() error { return o.Err }

// PointError reports a numerical failure at one material point (recoverable)
type PointError struct {
	Model     string     // model name
	Status    nls.Status // local solver status
	NonFinite bool       // non-finite stress or state
	Msg       string     // details
}

// Error implements error
func (o *PointError) Error() string {
	if o.NonFinite {
		return io.Sf("%s: non-finite state: %s", o.Model, o.Msg)
	}
	return io.Sf("%s: local solve failed (%v): %s", o.Model, o.Status, o.Msg)
}
