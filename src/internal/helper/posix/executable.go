// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// FallbackName is returned when os.Args carries no program name.
const FallbackName = "x509-store-context"

// GetExecutableName returns the executable name without directory or
// .exe extension. Windows separators are handled on every platform.
func GetExecutableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return FallbackName
	}

	name := filepath.Base(os.Args[0])

	// filepath.Base on Unix leaves Windows paths whole.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	return strings.TrimSuffix(name, ".exe")
}
