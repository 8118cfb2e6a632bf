// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated means the configuration names no HTTP address or no
// handler was supplied.
var errNoServersAreCreated = errors.New("no HTTP address or handler configured")
