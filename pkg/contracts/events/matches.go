package events

import "time"

// Team identifica um time como retornado pelo provedor de partidas.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ScoreLine é o placar de um período (casa/fora). Ponteiros porque o
// provedor omite valores para partidas ainda não disputadas.
type ScoreLine struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// MatchScore agrega o resultado de uma partida.
type MatchScore struct {
	Winner   string    `json:"winner,omitempty"` // HOME_TEAM | AWAY_TEAM | DRAW
	FullTime ScoreLine `json:"fullTime"`
}

// Match é o snapshot de uma partida externa. Somente leitura deste lado:
// o ciclo de vida pertence ao provedor.
type Match struct {
	ID       int64      `json:"id"`
	UTCDate  time.Time  `json:"utcDate"`
	Status   string     `json:"status"` // LIVE | IN_PLAY | PAUSED | FINISHED | ...
	HomeTeam Team       `json:"homeTeam"`
	AwayTeam Team       `json:"awayTeam"`
	Score    MatchScore `json:"score"`
}

// MatchList agrupa partidas ao vivo e finalizadas de uma liga.
type MatchList struct {
	Live     []Match `json:"live"`
	Finished []Match `json:"finished"`
}

// MatchesUpdated é o payload do broadcast periódico de partidas ao vivo.
type MatchesUpdated struct {
	LeagueCode string  `json:"leagueCode"`
	Matches    []Match `json:"matches"`
}
