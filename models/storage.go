// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// StorageUsage describes how much of the per-user quota is consumed.
// Byte counts are exact; the *Str fields are the human-readable renderings.
type StorageUsage struct {
	Used      int64 `json:"used"`
	Limit     int64 `json:"limit"`
	Remaining int64 `json:"remaining"`

	UsedStr      string `json:"used_str"`
	RemainingStr string `json:"remaining_str"`
}
