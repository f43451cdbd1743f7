package groups

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/t8wy/coverbot/internal/itunes"
)

// Reason codes for rejected poll operations.
type Reason string

const (
	ReasonNoPoll        Reason = "no-poll"
	ReasonAlreadyClosed Reason = "already-closed"
	ReasonNotInitiator  Reason = "not-initiator"
	ReasonBadCategory   Reason = "bad-category"
	ReasonNotCompleted  Reason = "not-completed"
	ReasonBadIndex      Reason = "bad-index"
)

// StateError reports a vote/finalize/select call that is invalid
// against the current poll state. The operation is rejected with no
// state mutation.
type StateError struct {
	Reason Reason
}

func (e *StateError) Error() string {
	return fmt.Sprintf("poll state: %s", e.Reason)
}

// Searcher runs a cover search for a finalized poll.
type Searcher interface {
	Search(query string, kind itunes.Kind) ([]itunes.Candidate, error)
}

// session holds one group's live poll, results log and selection
// history. Created lazily, lives for the process lifetime.
type session struct {
	mu sync.Mutex

	poll       *Poll
	resultsLog []CompletedPoll
	selections []Selection
}

// Coordinator serializes poll operations per group. The transport may
// deliver callback events from different users at the same time, so
// every vote/finalize/select runs under that group's lock to keep the
// one-category-per-voter invariant.
type Coordinator struct {
	mu       sync.Mutex
	sessions map[int64]*session

	searcher Searcher
	log      *slog.Logger
}

// NewCoordinator creates a Coordinator that uses searcher to resolve
// finalized polls.
func NewCoordinator(searcher Searcher, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{
		sessions: make(map[int64]*session),
		searcher: searcher,
		log:      log,
	}
}

func (c *Coordinator) session(groupID int64) *session {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[groupID]
	if !ok {
		s = &session{}
		c.sessions[groupID] = s
	}
	return s
}

// Start opens a new voting round. An in-progress poll for the same
// group is silently discarded and replaced; its votes are lost.
func (c *Coordinator) Start(groupID int64, query string, initiatorID int64, messageID int) *Poll {
	s := c.session(groupID)

	s.mu.Lock()
	defer s.mu.Unlock()

	p := newPoll(query, initiatorID, messageID)
	s.poll = p

	c.log.Info("group poll started",
		"group_id", groupID, "initiator_id", initiatorID, "query", query)
	return p
}

// Vote records a user's category choice on the live poll. A user who
// votes again moves to the new category; repeating the same category
// has no effect. Rejected once the poll has left the voting state.
func (c *Coordinator) Vote(groupID, userID int64, category itunes.Kind) error {
	if !category.Valid() {
		return &StateError{Reason: ReasonBadCategory}
	}

	s := c.session(groupID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poll == nil {
		return &StateError{Reason: ReasonNoPoll}
	}
	if s.poll.Status != StatusVoting {
		return &StateError{Reason: ReasonAlreadyClosed}
	}

	s.poll.castVote(userID, category)
	return nil
}

// Finalize closes voting, determines the winning category and runs the
// search. Only the poll initiator may finalize, and only while voting
// is open. The group lock is released during the search; poll state is
// re-validated before results are stored in case a new poll replaced
// this one in the meantime.
func (c *Coordinator) Finalize(groupID, userID int64) (*Poll, error) {
	s := c.session(groupID)

	s.mu.Lock()
	p := s.poll
	if p == nil {
		s.mu.Unlock()
		return nil, &StateError{Reason: ReasonNoPoll}
	}
	if p.Status != StatusVoting {
		s.mu.Unlock()
		return nil, &StateError{Reason: ReasonAlreadyClosed}
	}
	if userID != p.InitiatorID {
		s.mu.Unlock()
		return nil, &StateError{Reason: ReasonNotInitiator}
	}

	winner := p.winner()
	p.Status = StatusSearching
	p.SearchKind = winner
	query := p.Query
	s.mu.Unlock()

	results, err := c.searcher.Search(query, winner)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poll != p {
		// Replaced by a newer poll while the search ran.
		return nil, &StateError{Reason: ReasonNoPoll}
	}

	if err != nil {
		// Reopen voting so the initiator can retry finalize.
		p.Status = StatusVoting
		p.SearchKind = ""
		return nil, fmt.Errorf("finalize search: %w", err)
	}

	p.Results = results
	p.Status = StatusCompleted
	p.FinalizedAt = time.Now()

	s.resultsLog = append(s.resultsLog, CompletedPoll{
		Query:       p.Query,
		InitiatorID: p.InitiatorID,
		SearchKind:  winner,
		VoteCounts:  p.VoteCounts(),
		ResultCount: len(results),
		FinalizedAt: p.FinalizedAt,
	})

	c.log.Info("group poll finalized",
		"group_id", groupID, "winner", string(winner), "results", len(results))
	return p, nil
}

// Select picks one candidate from a completed poll and appends it to
// the group's selection history. Out-of-range indexes and wrong poll
// states are rejected without touching the history.
func (c *Coordinator) Select(groupID int64, index int) (itunes.Candidate, error) {
	s := c.session(groupID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poll == nil {
		return itunes.Candidate{}, &StateError{Reason: ReasonNoPoll}
	}
	if s.poll.Status != StatusCompleted {
		return itunes.Candidate{}, &StateError{Reason: ReasonNotCompleted}
	}
	if index < 0 || index >= len(s.poll.Results) {
		return itunes.Candidate{}, &StateError{Reason: ReasonBadIndex}
	}

	chosen := s.poll.Results[index]
	s.selections = append(s.selections, Selection{
		Query:      s.poll.Query,
		SearchKind: s.poll.SearchKind,
		Candidate:  chosen,
		SelectedAt: time.Now(),
	})
	return chosen, nil
}

// Poll returns the group's live poll, or nil when none exists.
func (c *Coordinator) Poll(groupID int64) *Poll {
	s := c.session(groupID)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.poll
}

// ResultsLog returns the group's completed rounds, oldest first.
func (c *Coordinator) ResultsLog(groupID int64) []CompletedPoll {
	s := c.session(groupID)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CompletedPoll, len(s.resultsLog))
	copy(out, s.resultsLog)
	return out
}

// Selections returns the group's selection history, oldest first.
func (c *Coordinator) Selections(groupID int64) []Selection {
	s := c.session(groupID)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Selection, len(s.selections))
	copy(out, s.selections)
	return out
}
