package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solutionfaq/backend/internal/middleware"
	"github.com/solutionfaq/backend/internal/models"
	"github.com/solutionfaq/backend/internal/services"
)

type VoteHandler struct {
	votes *services.VoteService
}

func NewVoteHandler(votes *services.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// CastVote handles POST /votes/answer/:answerId - one vote per user, toggles
// off if same direction, switches if opposite. Returns the counts after the
// transition.
func (h *VoteHandler) CastVote(c *gin.Context) {
	answerID, ok := parseIDParam(c, "answerId")
	if !ok {
		return
	}

	var input models.CastVoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_upvote is required"})
		return
	}

	counts, err := h.votes.Cast(answerID, middleware.VoterID(c), *input.IsUpvote)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// GetVotes handles GET /votes/answer/:answerId - pure read of the counts and
// the caller's own vote label.
func (h *VoteHandler) GetVotes(c *gin.Context) {
	answerID, ok := parseIDParam(c, "answerId")
	if !ok {
		return
	}

	summary, err := h.votes.Get(answerID, middleware.VoterID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
