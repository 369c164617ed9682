package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
)

// Config
const (
	API_URL = "http://localhost:8080/api/v1/scores"
)

// Score matches models.RecordScoreRequest
type Score struct {
	PlayerRef string `json:"player_ref"`
	Points    int    `json:"points"`
	Won       bool   `json:"won"`
}

var players = []string{
	"player-alpha-001",
	"player-bravo-002",
	"player-charlie-003",
	"player-delta-004",
	"player-echo-005",
}

func main() {
	for i := 0; i < 50; i++ {
		score := Score{
			PlayerRef: players[rand.Intn(len(players))],
			Points:    rand.Intn(500),
			Won:       rand.Intn(2) == 1,
		}

		payload, err := json.Marshal(score)
		if err != nil {
			log.Fatalf("Failed to marshal JSON: %v", err)
		}

		resp, err := http.Post(API_URL, "application/json", bytes.NewReader(payload))
		if err != nil {
			log.Fatalf("Request failed: %v", err)
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			log.Fatalf("Unexpected status %d: %s", resp.StatusCode, string(body))
		}
		fmt.Printf("Seeded %s points=%d won=%v\n", score.PlayerRef, score.Points, score.Won)
	}

	fmt.Println("Done.")
}
