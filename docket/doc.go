// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package docket keeps the live procedures of a running server.

Procedure stage values are single-owner. The docket owns them instead and
serializes every call per motion with a deadlock.Mutex, so one request at a
time touches a given motion. Double votes are already refused by package
procedure; the docket does not deduplicate requests itself.

# Dispatch

HTTP callers do not know the stage type at compile time. The docket checks
the current stage before each call and answers ErrWrongStage when the
operation does not belong to it:

	d := docket.New()
	d.Open(id, m)
	d.VotePrototype(id, dev)          // ok
	d.VotePetition(id, dev)           // ErrWrongStage
	t, err := d.Advance(id, 24*time.Hour)

Advance returns a Transition with the tallies of the stage that was left,
which callers use for their audit log.

Decided motions stay on the docket with their outcome; every mutating call on
them returns ErrDecided.
*/
package docket
