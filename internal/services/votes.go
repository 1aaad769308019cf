package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/solutionfaq/backend/internal/models"
)

// VoteService is the single-row-per-(answer, voter) vote ledger. Each cast is
// a read-modify-write inside one transaction; the unique index on
// (answer_id, voter_id) backstops concurrent inserts.
type VoteService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewVoteService(db *gorm.DB, logger *zap.Logger) *VoteService {
	return &VoteService{db: db, logger: logger}
}

// Cast applies one transition of the vote state machine for (answerID,
// voterID) and returns the answer's counts after the transition:
//
//	no vote  + cast(same)     -> vote inserted
//	existing + cast(same dir) -> vote removed (toggle off)
//	existing + cast(other)    -> direction switched, timestamp refreshed
func (s *VoteService) Cast(answerID uint, voterID string, isUpvote bool) (models.VoteCounts, error) {
	if voterID == "" {
		return models.VoteCounts{}, fmt.Errorf("voter identity missing: %w", ErrUnauthenticated)
	}

	counts, err := s.castOnce(answerID, voterID, isUpvote)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent cast from the same voter inserted first. Rerun the
		// transaction: the row now exists, so this pass takes the
		// toggle/switch branch instead of the insert.
		s.logger.Info("concurrent vote insert, retrying as update",
			zap.Uint("answer_id", answerID), zap.String("voter_id", voterID))
		counts, err = s.castOnce(answerID, voterID, isUpvote)
	}
	return counts, err
}

func (s *VoteService) castOnce(answerID uint, voterID string, isUpvote bool) (models.VoteCounts, error) {
	var counts models.VoteCounts

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var answer models.Answer
		if err := tx.First(&answer, answerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("answer %d: %w", answerID, ErrNotFound)
			}
			return err
		}

		var existing models.AnswerVote
		err := lockForUpdate(tx).
			Where("answer_id = ? AND voter_id = ?", answerID, voterID).
			First(&existing).Error

		switch {
		case err == nil:
			if existing.IsUpvote == isUpvote {
				// Same direction toggles the vote off.
				if err := tx.Delete(&existing).Error; err != nil {
					return err
				}
			} else {
				existing.IsUpvote = isUpvote
				existing.CreatedAt = time.Now().UTC()
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.AnswerVote{AnswerID: answerID, VoterID: voterID, IsUpvote: isUpvote}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		default:
			return err
		}

		c, err := countVotes(tx, answerID)
		if err != nil {
			return err
		}
		counts = c
		return nil
	})

	return counts, err
}

// Get returns the answer's counts plus the caller's own vote label. Pure
// read; voterID may be empty, in which case the label is null.
func (s *VoteService) Get(answerID uint, voterID string) (models.VoteSummary, error) {
	counts, err := countVotes(s.db, answerID)
	if err != nil {
		return models.VoteSummary{}, err
	}

	summary := models.VoteSummary{Upvotes: counts.Upvotes, Downvotes: counts.Downvotes}

	if voterID != "" {
		var vote models.AnswerVote
		err := s.db.Where("answer_id = ? AND voter_id = ?", answerID, voterID).First(&vote).Error
		switch {
		case err == nil:
			summary.UserVote = voteLabel(vote.IsUpvote)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no vote, label stays null
		default:
			return models.VoteSummary{}, err
		}
	}

	return summary, nil
}

func countVotes(tx *gorm.DB, answerID uint) (models.VoteCounts, error) {
	var counts models.VoteCounts
	if err := tx.Model(&models.AnswerVote{}).
		Where("answer_id = ? AND is_upvote = ?", answerID, true).
		Count(&counts.Upvotes).Error; err != nil {
		return counts, err
	}
	if err := tx.Model(&models.AnswerVote{}).
		Where("answer_id = ? AND is_upvote = ?", answerID, false).
		Count(&counts.Downvotes).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	// sqlite has no row locks; its single-writer transactions give the same
	// serialization.
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
