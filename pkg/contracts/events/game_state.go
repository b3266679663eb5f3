package events

// TokenState é a visão de um token do tabuleiro enviada aos clientes.
// Available=false significa que o token já foi revelado nesta rodada.
type TokenState struct {
	Kind      string `json:"type"` // "win" | "lose"
	Points    int64  `json:"points"`
	Emoji     string `json:"emoji"`
	Available bool   `json:"available"`
}

// GameState é o estado completo da mesa, sempre transmitido inteiro
// (nunca como diff). Os nomes de campo seguem o protocolo dos clientes
// web; Version é o token de concorrência otimista para overwrites.
type GameState struct {
	CurrentPlayer     string              `json:"currentPlayer"`
	Score             map[string]int64    `json:"score"`
	DiamondStates     []TokenState        `json:"diamondStates"`
	GoldBarStates     []TokenState        `json:"goldBarStates"`
	RubyStates        []TokenState        `json:"rubyStates"`
	TrophyStates      []TokenState        `json:"trophyStates"`
	TakenRowsByPlayer map[string][]string `json:"takenRowsByPlayer"`
	TakenCount        int                 `json:"takenCount"`
	TimeLeft          int                 `json:"timeLeft"`
	Version           uint64              `json:"version"`
}

// Group devolve a fileira identificada pelo nome usado no protocolo
// (diamondStates, goldBarStates, rubyStates, trophyStates).
func (g *GameState) Group(name string) []TokenState {
	switch name {
	case "diamondStates":
		return g.DiamondStates
	case "goldBarStates":
		return g.GoldBarStates
	case "rubyStates":
		return g.RubyStates
	case "trophyStates":
		return g.TrophyStates
	}
	return nil
}
