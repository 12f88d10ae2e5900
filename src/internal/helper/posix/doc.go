// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides helpers for [POSIX]-style process conventions.
//
// GetExecutableName returns the name the binary was invoked as, without
// directory or .exe suffix, for cobra usage lines:
//
//	rootCmd := &cobra.Command{
//	    Use: posix.GetExecutableName(),
//	}
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
