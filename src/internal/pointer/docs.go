// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package pointer provides [Wrapper], the shared handle every native
// resource type in this module is exposed through.
//
// A Wrapper is either owning, in which case a deleter frees the native
// resource once the last reference is released, or non-owning, in which case
// the caller keeps that responsibility. Copies of a Wrapper value alias the
// same reference record; [Wrapper.Clone] adds a reference and
// [Wrapper.Release] drops one.
package pointer
