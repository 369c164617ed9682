// Package content pulls question batches from the external trivia API and
// feeds the Redis question cache.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/openquiz/leaderboard-api/internal/models"
)

// Fetcher populates the content store with questions for one category.
type Fetcher interface {
	FetchCategory(ctx context.Context, category string, targetCount int) error
}

// QuestionSaver is the slice of the content store the fetcher writes to.
type QuestionSaver interface {
	SaveQuestions(ctx context.Context, category string, questions []models.Question) error
}

type triviaQuestion struct {
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type triviaResponse struct {
	ResponseCode int              `json:"response_code"`
	Results      []triviaQuestion `json:"results"`
}

// HTTPFetcher fetches from an opentdb-compatible trivia endpoint and writes
// the batch into the question cache.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
	saver   QuestionSaver
}

func NewHTTPFetcher(baseURL string, saver QuestionSaver) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		saver:   saver,
	}
}

func (f *HTTPFetcher) FetchCategory(ctx context.Context, category string, targetCount int) error {
	endpoint := fmt.Sprintf("%s/api.php?amount=%d&category=%s",
		f.baseURL, targetCount, url.QueryEscape(category))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch category %s: %w", category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch category %s: upstream returned %d", category, resp.StatusCode)
	}

	var body triviaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode trivia response for %s: %w", category, err)
	}
	if body.ResponseCode != 0 {
		return fmt.Errorf("fetch category %s: trivia response code %d", category, body.ResponseCode)
	}

	questions := make([]models.Question, 0, len(body.Results))
	for _, q := range body.Results {
		questions = append(questions, models.Question{
			ID:               uuid.New().String(),
			Category:         category,
			Difficulty:       q.Difficulty,
			Text:             q.Question,
			CorrectAnswer:    q.CorrectAnswer,
			IncorrectAnswers: q.IncorrectAnswers,
		})
	}

	if err := f.saver.SaveQuestions(ctx, category, questions); err != nil {
		return fmt.Errorf("store questions for %s: %w", category, err)
	}
	return nil
}
