package topics

const (
	// Apostas
	BetPlaced = "bet_placed"
)
