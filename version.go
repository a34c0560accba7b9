package main

import (
	"fmt"
	"strconv"
)

// Set with -ldflags "-X main.gitSHA1=...".
var (
	collshVersion string = "0.1.0"
	gitSHA1       string = "unknown"
	gitDirty      string = "unknown"
	buildDate     string = "unknown"
)

func isHex(s string) bool {
	for _, c := range s {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return s != ""
}

// versionString adds git commit and working tree status when available.
func versionString() string {
	version := "collsh " + collshVersion
	if isHex(gitSHA1) {
		version = fmt.Sprintf("%s (git:%s", version, gitSHA1)
		if dirty, err := strconv.Atoi(gitDirty); err == nil && dirty != 0 {
			version = fmt.Sprintf("%s-dirty", version)
		}
		version = fmt.Sprintf("%s)", version)
	}
	if buildDate != "unknown" {
		version = fmt.Sprintf("%s built %s", version, buildDate)
	}
	return version
}
