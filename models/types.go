package models

import "time"

// Stage values, matching procedure.Stage.String
const (
	StagePrototype  = "prototype"
	StageProposal   = "proposal"
	StagePetition   = "petition"
	StageReferendum = "referendum"
)

// Outcome values
const (
	OutcomeUndecided = "undecided"
	OutcomePassed    = "passed"
	OutcomeRejected  = "rejected"
)

// Referendum sides
const (
	SideFor     = "for"
	SideAgainst = "against"
)

// Request types

type CreateRosterRequest struct {
	Names []string `json:"names"`
}

// ElectorIDs nil means the whole roster
type CreateMotionRequest struct {
	RosterID     string   `json:"roster_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	DeveloperIDs []uint64 `json:"developer_ids"`
	ElectorIDs   []uint64 `json:"elector_ids,omitempty"`
}

type VoteRequest struct {
	PersonID *uint64 `json:"person_id"`
}

type ReferendumVoteRequest struct {
	PersonID *uint64 `json:"person_id"`
	Side     string  `json:"side"`
}

// DebateSeconds overrides the server default when leaving the prototype stage
type AdvanceRequest struct {
	DebateSeconds *int64 `json:"debate_seconds,omitempty"`
}

// Response types

type CreateRosterResponse struct {
	RosterID string `json:"roster_id"`
	Size     uint64 `json:"size"`
}

type RosterPerson struct {
	PersonID uint64 `json:"person_id"`
	Name     string `json:"name"`
}

type RosterResponse struct {
	RosterID string         `json:"roster_id"`
	People   []RosterPerson `json:"people"`
}

type SampleResponse struct {
	PersonIDs []uint64 `json:"person_ids"`
}

type CreateMotionResponse struct {
	MotionID string `json:"motion_id"`
	AdminKey string `json:"admin_key"`
}

type AdvanceResponse struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

type DecideResponse struct {
	Outcome      string `json:"outcome"`
	VotesFor     uint64 `json:"votes_for"`
	VotesAgainst uint64 `json:"votes_against"`
}

// Domain types

type Motion struct {
	ID           string    `json:"id"`
	RosterID     string    `json:"roster_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DeveloperIDs []uint64  `json:"developer_ids"`
	ElectorCount int       `json:"elector_count"`
	Outcome      string    `json:"outcome"`
	CreatedAt    time.Time `json:"created_at"`
}

// MotionStatus is the live view of a motion's procedure. Tally fields that do
// not apply to the current stage are omitted.
type MotionStatus struct {
	Motion         Motion     `json:"motion"`
	Stage          string     `json:"stage"`
	Votes          *uint64    `json:"votes,omitempty"`
	Required       *uint64    `json:"required,omitempty"`
	VotesFor       *uint64    `json:"votes_for,omitempty"`
	VotesAgainst   *uint64    `json:"votes_against,omitempty"`
	EligibleIDs    []uint64   `json:"eligible_ids,omitempty"`
	VotedCount     int        `json:"voted_count"`
	DebateEndsAt   *time.Time `json:"debate_ends_at,omitempty"`
	DebateEndsHint string     `json:"debate_ends_hint,omitempty"`
	Outcome        string     `json:"outcome"`
}

// Transition is one row of a motion's audit log
type Transition struct {
	FromStage    string    `json:"from_stage"`
	ToStage      string    `json:"to_stage"`
	Votes        uint64    `json:"votes"`
	VotesFor     uint64    `json:"votes_for"`
	VotesAgainst uint64    `json:"votes_against"`
	At           time.Time `json:"at"`
}

type HistoryResponse struct {
	MotionID    string       `json:"motion_id"`
	Transitions []Transition `json:"transitions"`
	Outcome     string       `json:"outcome"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
