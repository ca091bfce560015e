// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package procedure takes a motion through its four stages.

# Stages

Each stage is its own type, and only that type carries the operations legal
in it:

	Prototype   developers vote to propose           RegisterVote
	Proposal    public debate until a deadline       EndDate
	Petition    a random elector group approves      RegisterApproval
	Referendum  the whole electorate votes           RegisterVoteFor, RegisterVoteAgainst

A motion moves forward with Advance and finishes with Decide:

	proto, err := procedure.Begin(m)
	...
	prop, err := proto.Advance(72 * time.Hour)
	pet, err := prop.Advance()
	ref, err := pet.Advance()
	outcome, err := ref.Decide()

# Thresholds

	Prototype  → Proposal    votes > floor(developers / 2)
	Proposal   → Petition    now >= deadline
	Petition   → Referendum  approvals > floor(group size / 2)
	Referendum → Passed      for > against

Integer division and strict comparison mean ties never advance. A motion
without developers can never leave Prototype.

The petition group has round(electors × ratio) members, drawn without
replacement. The ratio defaults to DefaultPetitionerRatio and is set with
WithPetitionerRatio.

# Transitions

A failed Advance returns ErrThresholdNotMet or ErrDeadlineNotReached and
leaves the stage exactly as it was, so the caller can collect more votes or
wait and try again. A successful Advance consumes the old stage: any later call
on it returns ErrConsumed. Decide consumes the referendum only when the
motion passes. A tie or deficit returns Rejected with ErrThresholdNotMet and
the referendum keeps taking votes; Outcome reports the result without deciding.

Votes from people outside the stage's electorate, and second votes from the
same person, return ErrVoteRejected and change nothing.

# Concurrency

Stage values are not safe for concurrent use. Callers sharing a procedure
between goroutines must serialize access (see package docket).
*/
package procedure
