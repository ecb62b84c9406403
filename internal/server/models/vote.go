package models

// TargetKind says what a vote or view applies to.
type TargetKind int

const (
	TargetQuestion TargetKind = iota
	TargetAnswer
)

func (k TargetKind) String() string {
	switch k {
	case TargetQuestion:
		return "question"
	case TargetAnswer:
		return "answer"
	default:
		return "unknown"
	}
}

// Target identifies a votable entity.
type Target struct {
	Kind TargetKind
	ID   int64
}

// Direction is the button the voter pressed.
type Direction int

const (
	Up Direction = iota + 1
	Down
)

func (d Direction) IsUpvote() bool { return d == Up }

// VoteState is the ledger state of one (voter, target) pair.
type VoteState int

const (
	NoVote VoteState = iota
	Upvoted
	Downvoted
)

func (s VoteState) String() string {
	switch s {
	case Upvoted:
		return "upvoted"
	case Downvoted:
		return "downvoted"
	default:
		return "none"
	}
}

// Apply returns the state after the voter presses d. Pressing the button
// matching the current state clears the vote; the other button switches it.
func (s VoteState) Apply(d Direction) VoteState {
	switch {
	case d == Up && s == Upvoted, d == Down && s == Downvoted:
		return NoVote
	case d == Up:
		return Upvoted
	default:
		return Downvoted
	}
}

// StateOf maps a stored row (or its absence) to a VoteState.
func StateOf(v *Vote) VoteState {
	switch {
	case v == nil:
		return NoVote
	case v.IsUpvote:
		return Upvoted
	default:
		return Downvoted
	}
}

// Vote is one ledger row.
type Vote struct {
	ID       int64
	VoterID  int64
	Target   Target
	IsUpvote bool
}

// Tally is computed from ledger rows on demand.
type Tally struct {
	Up   int64
	Down int64
}

func (t Tally) Total() int64 { return t.Up + t.Down }
