package wagering

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/treasure-table-poc/internal/game"
	"github.com/radieske/treasure-table-poc/pkg/contracts/events"
)

var (
	ErrInvalidStake      = errors.New("invalid stake")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownBettor     = errors.New("unknown bettor")
	ErrBetNotFound       = errors.New("bet not found")
	ErrBetSettled        = errors.New("bet already settled")
)

// BetStatus é o ciclo de vida de uma aposta.
type BetStatus string

const (
	StatusActive  BetStatus = "active"
	StatusSettled BetStatus = "settled"
	StatusVoid    BetStatus = "void"
)

// Bet registra uma aposta debitada do pool de saldos compartilhado.
type Bet struct {
	ID       string
	Bettor   string
	MatchRef string
	BetType  string
	Stake    int64
	PlacedAt time.Time
	Status   BetStatus
}

// Ledger registra apostas contra o mesmo pool de saldos do jogo e mantém o
// cache de partidas em andamento por liga. O débito do stake e a criação do
// registro são atômicos sob o mutex: não existe aposta sem débito nem débito
// sem aposta.
type Ledger struct {
	mu      sync.Mutex
	log     *zap.Logger
	players *game.Players

	bets      map[string]*Bet
	lastID    int64 // último id emitido, pra manter ids distinguíveis
	inPlay    map[string][]events.Match
	OnBet     func() // métrica: aposta aceita
	OnRefresh func() // métrica: cache de liga atualizado
}

// NewLedger cria o ledger de apostas sobre o ledger de jogadores do jogo.
func NewLedger(log *zap.Logger, players *game.Players) *Ledger {
	return &Ledger{
		log:     log,
		players: players,
		bets:    make(map[string]*Bet),
		inPlay:  make(map[string][]events.Match),
	}
}

// PlaceBet debita o stake e cria a aposta, criando o apostador desconhecido
// com saldo inicial (caminho WebSocket). Devolve o id da aposta e o saldo
// após o débito.
func (l *Ledger) PlaceBet(bettor, matchRef, betType string, stake int64) (string, int64, error) {
	l.players.Ensure(bettor)
	return l.place(bettor, matchRef, betType, stake)
}

// PlaceBetStrict é a variante do endpoint HTTP: apostador desconhecido é
// erro, nunca criado implicitamente.
func (l *Ledger) PlaceBetStrict(bettor, matchRef, betType string, stake int64) (string, int64, error) {
	if !l.players.Known(bettor) {
		return "", 0, ErrUnknownBettor
	}
	return l.place(bettor, matchRef, betType, stake)
}

func (l *Ledger) place(bettor, matchRef, betType string, stake int64) (string, int64, error) {
	if stake <= 0 {
		return "", 0, ErrInvalidStake
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// checagem e débito na mesma seção crítica do ledger de jogadores: uma
	// claim concorrente não consegue encolher o saldo entre as duas
	balance, ok := l.players.TryDebit(bettor, stake)
	if !ok {
		return "", 0, ErrInsufficientFunds
	}
	id := l.nextIDLocked()
	l.bets[id] = &Bet{
		ID:       id,
		Bettor:   bettor,
		MatchRef: matchRef,
		BetType:  betType,
		Stake:    stake,
		PlacedAt: time.Now(),
		Status:   StatusActive,
	}

	if l.OnBet != nil {
		l.OnBet()
	}
	l.log.Info("bet placed",
		zap.String("bet_id", id),
		zap.String("bettor", bettor),
		zap.String("match", matchRef),
		zap.Int64("stake", stake),
		zap.Int64("balance", balance),
	)
	return id, balance, nil
}

// nextIDLocked emite um id derivado do relógio, monotonicamente distinguível
// mesmo quando duas apostas caem no mesmo milissegundo.
func (l *Ledger) nextIDLocked() string {
	now := time.Now().UnixMilli()
	if now <= l.lastID {
		now = l.lastID + 1
	}
	l.lastID = now
	return fmt.Sprintf("%d", now)
}

// Bet devolve uma cópia da aposta pelo id.
func (l *Ledger) Bet(id string) (Bet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bets[id]
	if !ok {
		return Bet{}, ErrBetNotFound
	}
	return *b, nil
}

// ActiveBets devolve as apostas ainda não liquidadas.
func (l *Ledger) ActiveBets() []Bet {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Bet, 0, len(l.bets))
	for _, b := range l.bets {
		if b.Status == StatusActive {
			out = append(out, *b)
		}
	}
	return out
}

// Settle é o gancho de liquidação: transiciona a aposta pra fora de Active
// exatamente uma vez e credita o payout informado pelo chamador via o ledger
// de jogadores. Nenhuma regra de odds vive aqui; o valor vem de fora.
func (l *Ledger) Settle(id string, status BetStatus, payout int64) error {
	if status != StatusSettled && status != StatusVoid {
		return fmt.Errorf("settle: invalid target status %q", status)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.bets[id]
	if !ok {
		return ErrBetNotFound
	}
	if b.Status != StatusActive {
		return ErrBetSettled
	}

	b.Status = status
	if payout > 0 {
		l.players.Adjust(b.Bettor, payout)
	}
	l.log.Info("bet settled",
		zap.String("bet_id", id),
		zap.String("status", string(status)),
		zap.Int64("payout", payout),
	)
	return nil
}

// RefreshMatches substitui em bloco o cache de partidas ao vivo da liga.
// Atualização pura de cache, sem efeito sobre apostas.
func (l *Ledger) RefreshMatches(leagueCode string, matches []events.Match) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := make([]events.Match, len(matches))
	copy(cp, matches)
	l.inPlay[leagueCode] = cp

	if l.OnRefresh != nil {
		l.OnRefresh()
	}
}

// MatchesInPlay devolve o último snapshot de partidas ao vivo da liga.
func (l *Ledger) MatchesInPlay(leagueCode string) []events.Match {
	l.mu.Lock()
	defer l.mu.Unlock()
	cached := l.inPlay[leagueCode]
	out := make([]events.Match, len(cached))
	copy(out, cached)
	return out
}
