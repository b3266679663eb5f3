package events

// Evento publicado no tópico "bet_placed" e enviado aos clientes WebSocket
// após o débito da aposta.
type BetPlaced struct {
	BetID    string `json:"betId"`
	UserID   string `json:"userId"`
	MatchID  string `json:"matchId"`
	BetType  string `json:"betType"`
	Amount   int64  `json:"amount"`
	Balance  int64  `json:"currentBalance"` // saldo após o débito
	TsUnixMs int64  `json:"ts_unix_ms"`
}
