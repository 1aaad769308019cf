package services

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/solutionfaq/backend/internal/models"
)

const (
	searchLimit   = 20
	relevantLimit = 5

	tierTitle    = 3
	tierCategory = 2
	tierBody     = 1
)

// SearchService ranks questions by keyword relevance. The public Search uses
// whole-string containment; FindRelevant, used only by the chatbot, matches
// any token of the message. The two are intentionally different in
// strictness.
type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// Search returns up to 20 questions whose title, body, category, or any
// answer body contains the query as a case-insensitive substring. Title
// matches rank above category matches, which rank above body/answer matches;
// ties break by recency.
func (s *SearchService) Search(query, voterID string) ([]models.QuestionView, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nil, fmt.Errorf("search query cannot be empty: %w", ErrInvalidArgument)
	}

	var questions []models.Question
	if err := QuestionGraph(s.db).Find(&questions).Error; err != nil {
		return nil, err
	}

	type scored struct {
		question models.Question
		tier     int
	}

	var matches []scored
	for _, q := range questions {
		if tier := matchTier(q, term); tier > 0 {
			matches = append(matches, scored{question: q, tier: tier})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].tier != matches[j].tier {
			return matches[i].tier > matches[j].tier
		}
		return matches[i].question.CreatedAt.After(matches[j].question.CreatedAt)
	})

	if len(matches) > searchLimit {
		matches = matches[:searchLimit]
	}

	views := make([]models.QuestionView, 0, len(matches))
	for _, m := range matches {
		views = append(views, QuestionToView(m.question, voterID))
	}
	return views, nil
}

// matchTier reports the ranking bucket for a question, 0 when it does not
// match. Title beats category beats body/answer.
func matchTier(q models.Question, term string) int {
	if strings.Contains(strings.ToLower(q.Title), term) {
		return tierTitle
	}
	if strings.Contains(strings.ToLower(q.Category), term) {
		return tierCategory
	}
	if strings.Contains(strings.ToLower(q.Body), term) {
		return tierBody
	}
	for _, a := range q.Answers {
		if strings.Contains(strings.ToLower(a.Body), term) {
			return tierBody
		}
	}
	return 0
}

// FindRelevant returns the top 5 questions matching any token of the message.
// Tokens of length <= 2 are discarded; a question matches when any remaining
// token is a substring of its title, body, category, or an answer body.
// Questions with more answers rank first.
func (s *SearchService) FindRelevant(message string) ([]models.Question, error) {
	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(message)) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	var questions []models.Question
	if err := QuestionGraph(s.db).Find(&questions).Error; err != nil {
		return nil, err
	}

	var matched []models.Question
	for _, q := range questions {
		if matchesAnyToken(q, tokens) {
			matched = append(matched, q)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return len(matched[i].Answers) > len(matched[j].Answers)
	})

	if len(matched) > relevantLimit {
		matched = matched[:relevantLimit]
	}
	return matched, nil
}

func matchesAnyToken(q models.Question, tokens []string) bool {
	title := strings.ToLower(q.Title)
	body := strings.ToLower(q.Body)
	category := strings.ToLower(q.Category)

	for _, tok := range tokens {
		if strings.Contains(title, tok) || strings.Contains(body, tok) || strings.Contains(category, tok) {
			return true
		}
		for _, a := range q.Answers {
			if strings.Contains(strings.ToLower(a.Body), tok) {
				return true
			}
		}
	}
	return false
}
