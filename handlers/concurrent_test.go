// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quickly-quiz/models"
	"github.com/danielhkuo/quickly-quiz/testutil"
)

// TestConcurrentVoteResubmission verifies that one team resubmitting votes
// in parallel ends up with exactly one complete set
func TestConcurrentVoteResubmission(t *testing.T) {
	svc, st := setupService(t)
	handler := NewTeamHandler(svc)

	sess, qs := testutil.CreateTestSurvey(t, st, models.StatusActive, models.StageVoting)
	alpha := testutil.CreateTestTeam(t, st, sess.ID, "Alpha")
	beta := testutil.CreateTestTeam(t, st, sess.ID, "Beta")
	a1 := testutil.CreateTestAnswer(t, st, sess.ID, alpha.ID, qs[0].ID, "Hire")
	a2 := testutil.CreateTestAnswer(t, st, sess.ID, beta.ID, qs[0].ID, "Automate")

	sets := [][]string{{a1.ID}, {a2.ID}, {a1.ID, a2.ID}}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/teams/"+alpha.ID+"/votes",
				models.SubmitVotesRequest{AnswerIDs: sets[idx%len(sets)]}, nil)
			req.SetPathValue("id", alpha.ID)
			w := httptest.NewRecorder()

			handler.SubmitVotes(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 12 {
		t.Errorf("Expected 12 successful submissions, got %d", successCount.Load())
	}

	votes, err := st.ListVotesByTeam(t.Context(), alpha.ID)
	if err != nil {
		t.Fatalf("Failed to list votes: %v", err)
	}

	valid := false
	for _, set := range sets {
		if len(set) == len(votes) {
			valid = true
		}
	}
	if !valid {
		t.Fatalf("Expected one complete vote set, got %d votes", len(votes))
	}

	seen := make(map[string]bool)
	for _, v := range votes {
		if seen[v.AnswerID] {
			t.Errorf("Duplicate vote for answer %s", v.AnswerID)
		}
		seen[v.AnswerID] = true
	}
}

// TestConcurrentParticipantAnswers verifies that parallel answers from
// different participants are all stored once
func TestConcurrentParticipantAnswers(t *testing.T) {
	svc, st := setupService(t)
	handler := NewAnswerHandler(svc)

	sess, qs := testutil.CreateTestQuiz(t, st, models.StatusInProgress, "Q1")

	numTeams := 8
	participants := make([]string, numTeams)
	for i := 0; i < numTeams; i++ {
		team := testutil.CreateTestTeam(t, st, sess.ID, fmt.Sprintf("Team %d", i))
		participants[i] = team.Participants[0].ID
	}

	var wg sync.WaitGroup
	for i := 0; i < numTeams; i++ {
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func(idx, attempt int) {
				defer wg.Done()

				req := testutil.MakeRequest("POST", "/answers", models.SubmitAnswerRequest{
					ParticipantID: participants[idx],
					QuestionID:    qs[0].ID,
					Content:       fmt.Sprintf("answer %d", attempt),
				}, nil)
				w := httptest.NewRecorder()

				handler.SubmitAnswer(w, req)

				if w.Code != http.StatusOK {
					t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
				}
			}(i, j)
		}
	}

	wg.Wait()

	answers, err := st.ListAnswersByQuestion(t.Context(), qs[0].ID)
	if err != nil {
		t.Fatalf("Failed to list answers: %v", err)
	}
	if len(answers) != numTeams {
		t.Errorf("Expected %d answers (one per participant), got %d", numTeams, len(answers))
	}

	status, err := svc.SessionStatus(t.Context(), sess.ID)
	if err != nil {
		t.Fatalf("Failed to load status: %v", err)
	}
	for _, team := range status.Teams {
		if team.QuestionStatus != models.ProgressAnswered {
			t.Errorf("Expected team %s answered, got %s", team.Name, team.QuestionStatus)
		}
	}
}
