package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/revu/internal/core"
)

func TestState_Approve(t *testing.T) {
	s := New("const a = 1")

	s.Approve()

	assert.Equal(t, VerdictApproved, s.Verdict)
	assert.True(t, s.PopupVisible)
	assert.False(t, s.Loading, "approval never starts a review")

	s.DismissPopup()
	assert.False(t, s.PopupVisible)
	assert.Equal(t, VerdictApproved, s.Verdict)
}

func TestState_ReviewCode(t *testing.T) {
	s := New("x")
	s.Approve()

	assert.True(t, s.ReviewCode())
	assert.True(t, s.Loading)
	assert.Equal(t, "Reviewing...", s.ReviewButtonLabel())
	assert.False(t, s.CanReview())

	s.CompleteReview("**ok**", nil)

	assert.False(t, s.Loading)
	assert.Equal(t, "**ok**", s.Review)
	assert.Equal(t, "Review Code", s.ReviewButtonLabel())
	assert.Equal(t, VerdictApproved, s.Verdict, "review leaves the verdict alone")
}

func TestState_RequestChanges(t *testing.T) {
	s := New("x")
	s.Approve()

	assert.True(t, s.RequestChanges())
	assert.Equal(t, VerdictChangesRequested, s.Verdict)
	assert.True(t, s.Loading)

	s.CompleteReview("needs work", nil)

	assert.Equal(t, VerdictNone, s.Verdict)
	assert.Equal(t, "needs work", s.Review)
	assert.False(t, s.Loading)
}

func TestState_TriggersDisabledWhileLoading(t *testing.T) {
	testCases := []struct {
		name   string
		second func(s *State) bool
	}{
		{name: "Review while reviewing", second: (*State).ReviewCode},
		{name: "Request changes while reviewing", second: (*State).RequestChanges},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New("x")
			assert.True(t, s.ReviewCode())

			assert.False(t, tc.second(s))
			assert.Equal(t, VerdictNone, s.Verdict)

			s.CompleteReview("done", nil)
			assert.Equal(t, "done", s.Review)
		})
	}
}

func TestState_CompleteReviewFailure(t *testing.T) {
	s := New("x")
	s.Review = "previous"
	assert.True(t, s.RequestChanges())

	s.CompleteReview("", errors.New("connection refused"))

	assert.Equal(t, core.FallbackReview, s.Review)
	assert.Equal(t, "Failed to get review. Please try again.", s.Review)
	assert.False(t, s.Loading)
	assert.Equal(t, VerdictNone, s.Verdict)
}

func TestState_CompleteWithoutReviewIsIgnored(t *testing.T) {
	s := New("x")
	s.CompleteReview("stray", nil)

	assert.False(t, s.HasReview())
	assert.False(t, s.Loading)
}

func TestState_Edit(t *testing.T) {
	s := New("a")
	s.Approve()
	s.Edit("b")

	assert.Equal(t, "b", s.Code)
	assert.Equal(t, VerdictApproved, s.Verdict)
	assert.True(t, s.PopupVisible)
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "none", VerdictNone.String())
	assert.Equal(t, "approved", VerdictApproved.String())
	assert.Equal(t, "changes requested", VerdictChangesRequested.String())
}
