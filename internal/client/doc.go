// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It restores a saved session or runs the QR login in the terminal UI, then
// completes the cookie login and persists the result.
package client
