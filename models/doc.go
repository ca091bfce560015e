// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateRosterRequest: names
  - CreateMotionRequest: roster_id, title, description, developer_ids, elector_ids
  - VoteRequest: person_id
  - ReferendumVoteRequest: person_id, side
  - AdvanceRequest: debate_seconds

Person IDs on the wire are roster positions.

# Response Types

Types for JSON responses:

  - CreateRosterResponse: roster_id, size
  - RosterResponse: roster_id, people
  - SampleResponse: person_ids
  - CreateMotionResponse: motion_id, admin_key
  - AdvanceResponse: from, to, at
  - DecideResponse: outcome, votes_for, votes_against
  - MotionStatus: live stage, tallies, eligible voters and debate deadline
  - HistoryResponse: stage transitions from the audit log
  - ErrorResponse: error, message

# Constants

Stages:

	StagePrototype  = "prototype"
	StageProposal   = "proposal"
	StagePetition   = "petition"
	StageReferendum = "referendum"

Outcomes:

	OutcomeUndecided = "undecided"
	OutcomePassed    = "passed"
	OutcomeRejected  = "rejected"

Referendum sides:

	SideFor     = "for"
	SideAgainst = "against"
*/
package models
