// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// AppBuildInfo is the build metadata linked into a binary via -ldflags.
type AppBuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		Version: version,
		Date:    date,
		Commit:  commit,
	}
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("version %s, built %s from commit %s", a.Version, a.Date, a.Commit)
}
