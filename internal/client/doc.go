// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the note service.
//
// Each invocation signs in with the configured credentials, runs exactly one
// command against the server through the adapter and prints the result.
package client
