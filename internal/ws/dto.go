package ws

import "encoding/json"

// ClientMsg é o envelope de toda mensagem recebida do cliente.
// Type: registerPlayer | takeToken | placeBet | updateState
type ClientMsg struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ServerMsg é o envelope de toda mensagem enviada ao cliente.
type ServerMsg struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// TakeTokenMsg é a tentativa de revelar o token em (rowId, index).
type TakeTokenMsg struct {
	Player string `json:"player"`
	RowID  string `json:"rowId"`
	Index  int    `json:"index"`
}

// PlaceBetMsg é o pedido de aposta vindo pelo WebSocket.
type PlaceBetMsg struct {
	UserID  string `json:"userId"`
	MatchID string `json:"matchId"`
	BetType string `json:"betType"`
	Amount  int64  `json:"amount"`
}

// ErrorMsg é enviado somente ao cliente cuja requisição foi rejeitada.
type ErrorMsg struct {
	Reason string `json:"reason"`
}
