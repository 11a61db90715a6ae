// Package editor holds the review session state behind the terminal editor.
// It has no I/O: callers start the network call when BeginReview allows it
// and report the outcome through CompleteReview.
package editor

import "github.com/sevigo/revu/internal/core"

// Verdict is the reviewer's decision on the current code.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictApproved
	VerdictChangesRequested
)

func (v Verdict) String() string {
	switch v {
	case VerdictApproved:
		return "approved"
	case VerdictChangesRequested:
		return "changes requested"
	default:
		return "none"
	}
}

// Trigger identifies what started a review.
type Trigger int

const (
	TriggerReview Trigger = iota
	TriggerRequestChanges
)

// State is one editor session.
type State struct {
	Code         string
	Verdict      Verdict
	Review       string
	Loading      bool
	PopupVisible bool

	trigger Trigger
}

// New returns a session preloaded with code.
func New(code string) *State {
	return &State{Code: code}
}

// Edit replaces the code text.
func (s *State) Edit(code string) {
	s.Code = code
}

// Approve records approval and shows the confirmation popup.
func (s *State) Approve() {
	s.Verdict = VerdictApproved
	s.PopupVisible = true
}

// DismissPopup hides the confirmation popup.
func (s *State) DismissPopup() {
	s.PopupVisible = false
}

// CanReview reports whether a review may be started.
func (s *State) CanReview() bool {
	return !s.Loading
}

// ReviewCode starts a review and reports whether the caller must send one.
func (s *State) ReviewCode() bool {
	return s.begin(TriggerReview)
}

// RequestChanges marks the code as needing changes and starts a review.
// It reports whether the caller must send one.
func (s *State) RequestChanges() bool {
	if !s.begin(TriggerRequestChanges) {
		return false
	}
	s.Verdict = VerdictChangesRequested
	return true
}

func (s *State) begin(t Trigger) bool {
	if s.Loading {
		return false
	}
	s.Loading = true
	s.trigger = t
	return true
}

// CompleteReview ends the outstanding review. Any error is shown to the
// user as the fixed fallback text.
func (s *State) CompleteReview(review string, err error) {
	if !s.Loading {
		return
	}
	s.Loading = false

	if err != nil {
		s.Review = core.FallbackReview
	} else {
		s.Review = review
	}

	if s.trigger == TriggerRequestChanges {
		s.Verdict = VerdictNone
	}
}

// HasReview reports whether the review panel has something to render.
func (s *State) HasReview() bool {
	return s.Review != ""
}

// ReviewButtonLabel is the text of the review action.
func (s *State) ReviewButtonLabel() string {
	if s.Loading {
		return "Reviewing..."
	}
	return "Review Code"
}
