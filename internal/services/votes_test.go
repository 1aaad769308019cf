package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/solutionfaq/backend/internal/models"
)

func newVoteFixture(t *testing.T) (*VoteService, *gorm.DB, models.Answer) {
	t.Helper()

	db := newTestDB(t)
	q := seedQuestion(t, db, "How do I reset my VPN profile?", "", "Networking", "Open the client and click reset.")
	return NewVoteService(db, zap.NewNop()), db, q.Answers[0]
}

func TestCastVoteToggleOff(t *testing.T) {
	svc, _, answer := newVoteFixture(t)

	counts, err := svc.Cast(answer.ID, "a@example.com", true)
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{Upvotes: 1, Downvotes: 0}, counts)

	// Same direction again removes the vote entirely.
	counts, err = svc.Cast(answer.ID, "a@example.com", true)
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{Upvotes: 0, Downvotes: 0}, counts)
}

func TestCastVoteSwitchDirection(t *testing.T) {
	svc, db, answer := newVoteFixture(t)

	_, err := svc.Cast(answer.ID, "a@example.com", true)
	require.NoError(t, err)

	counts, err := svc.Cast(answer.ID, "a@example.com", false)
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{Upvotes: 0, Downvotes: 1}, counts)

	// Exclusivity: still exactly one row for the pair.
	var rows int64
	require.NoError(t, db.Model(&models.AnswerVote{}).
		Where("answer_id = ? AND voter_id = ?", answer.ID, "a@example.com").
		Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestCastVoteDownvoteToggle(t *testing.T) {
	svc, _, answer := newVoteFixture(t)

	counts, err := svc.Cast(answer.ID, "a@example.com", false)
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{Upvotes: 0, Downvotes: 1}, counts)

	counts, err = svc.Cast(answer.ID, "a@example.com", false)
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{Upvotes: 0, Downvotes: 0}, counts)
}

func TestCastVoteMultipleVoters(t *testing.T) {
	svc, _, answer := newVoteFixture(t)

	_, err := svc.Cast(answer.ID, "a@example.com", true)
	require.NoError(t, err)
	_, err = svc.Cast(answer.ID, "b@example.com", true)
	require.NoError(t, err)

	counts, err := svc.Cast(answer.ID, "c@example.com", false)
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{Upvotes: 2, Downvotes: 1}, counts)
}

func TestCastVoteUnknownAnswer(t *testing.T) {
	svc, _, _ := newVoteFixture(t)

	_, err := svc.Cast(9999, "a@example.com", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCastVoteMissingVoter(t *testing.T) {
	svc, _, answer := newVoteFixture(t)

	_, err := svc.Cast(answer.ID, "", true)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGetVotes(t *testing.T) {
	svc, _, answer := newVoteFixture(t)

	_, err := svc.Cast(answer.ID, "a@example.com", true)
	require.NoError(t, err)
	_, err = svc.Cast(answer.ID, "b@example.com", false)
	require.NoError(t, err)

	summary, err := svc.Get(answer.ID, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Upvotes)
	assert.Equal(t, int64(1), summary.Downvotes)
	require.NotNil(t, summary.UserVote)
	assert.Equal(t, "upvote", *summary.UserVote)

	summary, err = svc.Get(answer.ID, "b@example.com")
	require.NoError(t, err)
	require.NotNil(t, summary.UserVote)
	assert.Equal(t, "downvote", *summary.UserVote)

	// No vote and no voter both yield a null label.
	summary, err = svc.Get(answer.ID, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, summary.UserVote)

	summary, err = svc.Get(answer.ID, "")
	require.NoError(t, err)
	assert.Nil(t, summary.UserVote)
}

func TestGetVotesIsIdempotent(t *testing.T) {
	svc, _, answer := newVoteFixture(t)

	_, err := svc.Cast(answer.ID, "a@example.com", true)
	require.NoError(t, err)

	first, err := svc.Get(answer.ID, "a@example.com")
	require.NoError(t, err)
	second, err := svc.Get(answer.ID, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// The unique (answer_id, voter_id) index is the backstop for concurrent
// inserts; a raw duplicate must come back as gorm.ErrDuplicatedKey so Cast
// can retry it as an update.
func TestVoteUniqueIndexBackstop(t *testing.T) {
	_, db, answer := newVoteFixture(t)

	require.NoError(t, db.Create(&models.AnswerVote{
		AnswerID: answer.ID, VoterID: "a@example.com", IsUpvote: true,
	}).Error)

	err := db.Create(&models.AnswerVote{
		AnswerID: answer.ID, VoterID: "a@example.com", IsUpvote: false,
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestDeletingAnswerCascadesVotes(t *testing.T) {
	svc, db, answer := newVoteFixture(t)

	_, err := svc.Cast(answer.ID, "a@example.com", true)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.Answer{}, answer.ID).Error)

	var rows int64
	require.NoError(t, db.Model(&models.AnswerVote{}).Where("answer_id = ?", answer.ID).Count(&rows).Error)
	assert.Equal(t, int64(0), rows)
}
