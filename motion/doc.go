// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package motion defines the immutable record of a proposed action: its title,
// description, developers and electors. Slices are copied on the way in and on
// the way out, so a Motion cannot be changed once built.
package motion
