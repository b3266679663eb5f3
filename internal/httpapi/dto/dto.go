package dto

import "github.com/radieske/treasure-table-poc/pkg/contracts/events"

type PlaceBetRequest struct {
	UserID  string `json:"userId"`
	MatchID string `json:"matchId"`
	BetType string `json:"betType"` // "home" | "draw" | "away"
	Amount  int64  `json:"amount"`
}

type PlaceBetResponse struct {
	BetID          string `json:"betId"`
	CurrentBalance int64  `json:"currentBalance"`
}

type MatchesResponse struct {
	Matches events.MatchList `json:"matches"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
