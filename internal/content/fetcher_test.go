package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openquiz/leaderboard-api/internal/models"
)

type MockSaver struct {
	Saved map[string][]models.Question
}

func (m *MockSaver) SaveQuestions(ctx context.Context, category string, questions []models.Question) error {
	if m.Saved == nil {
		m.Saved = map[string][]models.Question{}
	}
	m.Saved[category] = questions
	return nil
}

func TestFetchCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("amount") != "2" {
			t.Errorf("Expected amount=2, got %s", r.URL.Query().Get("amount"))
		}
		if r.URL.Query().Get("category") != "science" {
			t.Errorf("Expected category=science, got %s", r.URL.Query().Get("category"))
		}
		json.NewEncoder(w).Encode(triviaResponse{
			ResponseCode: 0,
			Results: []triviaQuestion{
				{Difficulty: "easy", Question: "What is H2O?", CorrectAnswer: "Water", IncorrectAnswers: []string{"Salt", "Air", "Fire"}},
				{Difficulty: "hard", Question: "Planck constant unit?", CorrectAnswer: "J*s", IncorrectAnswers: []string{"J", "W", "N"}},
			},
		})
	}))
	defer srv.Close()

	saver := &MockSaver{}
	f := NewHTTPFetcher(srv.URL, saver)

	if err := f.FetchCategory(context.Background(), "science", 2); err != nil {
		t.Fatalf("FetchCategory failed: %v", err)
	}

	saved := saver.Saved["science"]
	if len(saved) != 2 {
		t.Fatalf("Expected 2 questions saved, got %d", len(saved))
	}
	if saved[0].ID == "" {
		t.Error("Expected assigned question ID")
	}
	if saved[0].Category != "science" || saved[0].Text != "What is H2O?" {
		t.Errorf("Question fields wrong: %+v", saved[0])
	}
}

func TestFetchCategory_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, &MockSaver{})
	if err := f.FetchCategory(context.Background(), "science", 2); err == nil {
		t.Fatal("Expected error on upstream failure")
	}
}

func TestFetchCategory_TriviaResponseCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(triviaResponse{ResponseCode: 1})
	}))
	defer srv.Close()

	saver := &MockSaver{}
	f := NewHTTPFetcher(srv.URL, saver)
	if err := f.FetchCategory(context.Background(), "science", 2); err == nil {
		t.Fatal("Expected error on non-zero trivia response code")
	}
	if len(saver.Saved) != 0 {
		t.Error("Nothing should be saved on a failed fetch")
	}
}
