package services

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/solutionfaq/backend/internal/models"
)

const (
	noMatchResponse = "I couldn't find any questions related to your query. Please try rephrasing or browse through our categories."
	troubleResponse = "I'm having trouble processing your request right now. Please try again later."
	emptyResponse   = "I couldn't generate a response."

	maxRelatedQuestions = 3
	maxAnswersPerPrompt = 3
	maxFallbackLines    = 5
)

type ChatbotConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ChatbotService turns the top relevant questions into a prompt for the
// completion service and degrades to a deterministic local answer when that
// service is unavailable. Answer never returns an error: every failure mode
// ends in one of the fixed responses with status 200 upstream.
type ChatbotService struct {
	search  *SearchService
	client  *openai.Client // nil when no credential is configured
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewChatbotService(search *SearchService, cfg ChatbotConfig, logger *zap.Logger) *ChatbotService {
	var client *openai.Client
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		client = openai.NewClientWithConfig(clientCfg)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &ChatbotService{
		search:  search,
		client:  client,
		model:   cfg.Model,
		timeout: timeout,
		logger:  logger,
	}
}

// Answer resolves a chatbot message to a response and up to 3 related
// questions.
func (s *ChatbotService) Answer(ctx context.Context, message string) (resp models.ChatbotResponse) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("chatbot panic recovered", zap.Any("panic", r))
			resp = models.ChatbotResponse{
				Response:         troubleResponse,
				RelatedQuestions: []models.RelatedQuestion{},
			}
		}
	}()

	relevant, err := s.search.FindRelevant(message)
	if err != nil {
		s.logger.Error("chatbot relevance lookup failed", zap.Error(err))
		return models.ChatbotResponse{
			Response:         troubleResponse,
			RelatedQuestions: []models.RelatedQuestion{},
		}
	}

	if len(relevant) == 0 {
		return models.ChatbotResponse{
			Response:         noMatchResponse,
			RelatedQuestions: []models.RelatedQuestion{},
		}
	}

	prompt := buildPrompt(relevant, message)

	return models.ChatbotResponse{
		Response:         s.complete(ctx, prompt),
		RelatedQuestions: relatedQuestions(relevant),
	}
}

// complete calls the completion service, degrading to the deterministic
// fallback on any failure. The fallback never touches the network.
func (s *ChatbotService) complete(ctx context.Context, prompt string) string {
	if s.client == nil {
		s.logger.Warn("completion service not configured, using fallback response")
		return fallbackResponse(prompt)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a helpful FAQ assistant."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		s.logger.Error("completion service call failed", zap.Error(err))
		return fallbackResponse(prompt)
	}
	if len(resp.Choices) == 0 {
		s.logger.Error("completion service returned no choices")
		return fallbackResponse(prompt)
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return emptyResponse
	}
	return content
}

// buildPrompt enumerates each relevant question with its category and up to 3
// answers, then the user's message and a concise-answer instruction.
func buildPrompt(questions []models.Question, userQuery string) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful FAQ assistant. Answer the user's question based on the following Q&A data:\n\n")

	for _, q := range questions {
		sb.WriteString("Question: " + q.Title + "\n")
		if q.Body != "" {
			sb.WriteString("Details: " + q.Body + "\n")
		}
		sb.WriteString("Category: " + q.Category + "\n")

		if len(q.Answers) > 0 {
			sb.WriteString("Answers:\n")
			for i, a := range q.Answers {
				if i == maxAnswersPerPrompt {
					break
				}
				sb.WriteString("- " + a.Body + "\n")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("User Question: " + userQuery + "\n\n")
	sb.WriteString("Please provide a helpful and concise answer based on the above information. If the exact answer isn't available, provide the most relevant information from the FAQ data.")

	return sb.String()
}

// fallbackResponse extracts the question and answer-bullet lines from the
// prompt and joins up to 5 of them behind a fixed explanatory sentence.
func fallbackResponse(prompt string) string {
	var lines []string
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "Question:") || strings.HasPrefix(line, "- ") {
			lines = append(lines, line)
			if len(lines) == maxFallbackLines {
				break
			}
		}
	}

	if len(lines) == 0 {
		return "I couldn't find specific information about your query. Please try browsing our FAQ categories or asking a more specific question."
	}

	return "Based on our FAQ database, here's what I found:\n\n" +
		strings.Join(lines, "\n") +
		"\n\nFor more detailed information, please check the specific questions in the FAQ section."
}

func relatedQuestions(questions []models.Question) []models.RelatedQuestion {
	related := make([]models.RelatedQuestion, 0, maxRelatedQuestions)
	for i, q := range questions {
		if i == maxRelatedQuestions {
			break
		}
		answerBodies := make([]string, 0, len(q.Answers))
		for _, a := range q.Answers {
			answerBodies = append(answerBodies, a.Body)
		}
		related = append(related, models.RelatedQuestion{
			ID:           q.ID,
			Title:        q.Title,
			Body:         q.Body,
			Category:     q.Category,
			AnswerBodies: answerBodies,
		})
	}
	return related
}
