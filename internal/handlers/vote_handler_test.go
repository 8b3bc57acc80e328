package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"art-contest/internal/models"
	"art-contest/internal/repository/repomock"
	"art-contest/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCastVoteValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, s.user)
	contest := testutil.CreateContest(t, s.db, s.admin.ID, time.Now().Add(time.Hour))
	submission := testutil.CreateSubmission(t, s.db, contest.ID, s.admin.ID, 0)

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{"bad submission id", map[string]string{"submissionId": "123", "category": "community_vote"}, http.StatusBadRequest},
		{"unknown category", map[string]string{"submissionId": submission.ID.String(), "category": "best_in_show"}, http.StatusBadRequest},
		{"missing category", map[string]string{"submissionId": submission.ID.String()}, http.StatusBadRequest},
		{"judge vote by non-admin", map[string]string{"submissionId": submission.ID.String(), "category": "judge_vote"}, http.StatusForbidden},
		{"unknown submission", map[string]string{"submissionId": uuid.NewString(), "category": "community_vote"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireStatus(t, s.do(t, http.MethodPost, "/api/votes", token, tt.body), tt.want)
		})
	}

	requireStatus(t, s.do(t, http.MethodPost, "/api/votes", "", map[string]string{
		"submissionId": submission.ID.String(), "category": "community_vote",
	}), http.StatusUnauthorized)
}

func TestCastVote(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, s.user)
	contest := testutil.CreateContest(t, s.db, s.admin.ID, time.Now().Add(time.Hour))
	submission := testutil.CreateSubmission(t, s.db, contest.ID, s.admin.ID, 0)
	body := map[string]string{"submissionId": submission.ID.String(), "category": "community_vote"}

	w := s.do(t, http.MethodPost, "/api/votes", token, body)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, map[string]interface{}{"success": true}, decode(t, w))

	w = s.do(t, http.MethodPost, "/api/votes", token, body)
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "You have already voted in this category", decode(t, w)["error"])

	w = s.do(t, http.MethodGet, "/api/votes?submissionId="+submission.ID.String(), token, nil)
	requireStatus(t, w, http.StatusOK)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{"community_vote"}, data["my_categories"])

	artist, err := s.repo.GetProfileByID(context.Background(), s.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, artist.CurrentJackpotEntries)
}

func TestCastVoteSucceedsWhenJackpotAwardFails(t *testing.T) {
	procs := new(repomock.Procedures)
	procs.On("AddJackpotEntries", mock.Anything, mock.Anything).Return(nil, errors.New("rpc unavailable"))
	s := newTestServerWithProcedures(t, procs)

	contest := testutil.CreateContest(t, s.db, s.admin.ID, time.Now().Add(time.Hour))
	submission := testutil.CreateSubmission(t, s.db, contest.ID, s.admin.ID, 0)

	w := s.do(t, http.MethodPost, "/api/votes", s.token(t, s.user), map[string]string{
		"submissionId": submission.ID.String(), "category": "community_vote",
	})
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, true, decode(t, w)["success"])

	var votes int64
	s.db.Model(&models.Vote{}).Count(&votes)
	assert.Equal(t, int64(1), votes)
	procs.AssertNumberOfCalls(t, "AddJackpotEntries", 1)
}

func TestJudgeVoteByAdmin(t *testing.T) {
	s := newTestServer(t)
	contest := testutil.CreateContest(t, s.db, s.admin.ID, time.Now().Add(time.Hour))
	submission := testutil.CreateSubmission(t, s.db, contest.ID, s.user.ID, 0)

	w := s.do(t, http.MethodPost, "/api/votes", s.token(t, s.admin), map[string]string{
		"submissionId": submission.ID.String(), "category": "judge_vote",
	})
	requireStatus(t, w, http.StatusOK)
}
