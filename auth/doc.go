// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides motion admin keys and ID generation.

# Admin Keys

Whoever opens a motion receives its admin key. Advancing the motion and
deciding its referendum require the key in the X-Admin-Key header. Keys use
HMAC-SHA256 so they can be checked without storing them:

	adminKey := auth.GenerateAdminKey(motionID, salt)
	err := auth.RequireAdmin(r, motionID, salt)

Votes need no key; eligibility is checked against the motion's voter lists.

# ID Generation

Random hex IDs for motions:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
