package game

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/radieske/treasure-table-poc/pkg/contracts/events"
)

var (
	// ErrInvalidClaim indica group/index fora do tabuleiro (erro do chamador).
	ErrInvalidClaim = errors.New("invalid claim")
	// ErrStaleState indica um overwrite baseado em versão antiga do estado.
	ErrStaleState = errors.New("stale state version")
)

// defaultTimeLeft é o relógio da rodada após cada reset.
const defaultTimeLeft = 10

// Outcome descreve o efeito de uma mutação sobre a rodada.
type Outcome int

const (
	// OutcomeNoop: nada mudou (perdedor da corrida pelo mesmo token).
	OutcomeNoop Outcome = iota
	// OutcomeChanged: mutação aplicada, rodada segue em andamento.
	OutcomeChanged
	// OutcomeReset: a mutação completou a rodada e o tabuleiro foi reiniciado.
	OutcomeReset
)

// Update é o resultado de uma mutação: o que aconteceu e o estado canônico
// completo a ser transmitido (sempre o estado inteiro, nunca um diff).
type Update struct {
	Outcome Outcome
	State   events.GameState
}

// Engine é a fonte única de verdade da mesa: tabuleiro, rodada e ponteiro de
// jogador ativo. Todas as mutações entram por aqui e rodam até o fim sob um
// único mutex, na ordem de chegada. Duas claims nunca são aplicadas ao mesmo
// tempo, então "primeiro a escrever vence" é bem definido.
type Engine struct {
	mu  sync.Mutex
	log *zap.Logger

	board   *Board
	players *Players

	firstPlayer   string
	currentPlayer string
	timeLeft      int
	takenCount    int
	version       uint64

	// Callbacks de métricas (counter++), ligadas no main.
	OnClaim func()
	OnReset func()
}

// NewEngine monta uma rodada nova sobre o ledger de jogadores recebido.
func NewEngine(log *zap.Logger, players *Players, firstPlayer string) *Engine {
	return &Engine{
		log:           log,
		board:         NewBoard(),
		players:       players,
		firstPlayer:   firstPlayer,
		currentPlayer: firstPlayer,
		timeLeft:      defaultTimeLeft,
	}
}

// Register garante a existência do jogador e devolve a lista atual de
// identidades conhecidas.
func (e *Engine) Register(id string) []string {
	e.players.Ensure(id)
	return e.players.List()
}

// Snapshot devolve o estado completo corrente (transferência integral na
// conexão de um novo observador).
func (e *Engine) Snapshot() events.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// StateChanged registra uma mudança de saldo feita fora do tabuleiro
// (débito/crédito de aposta), avança a versão e devolve o novo estado
// canônico para broadcast.
func (e *Engine) StateChanged() events.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.version++
	return e.snapshotLocked()
}

// Claim aplica a tentativa de um jogador de revelar o token em (group, index).
//
// Posição fora do tabuleiro é erro do chamador (ErrInvalidClaim). Token já
// revelado não é erro: a claim vira no-op e o estado é devolvido inalterado,
// garantindo exatamente um vencedor quando dois clientes disputam a mesma célula.
// No sucesso credita os pontos via Players.Adjust (com clamp em zero) e, na
// 16ª revelação, executa o reset da rodada.
func (e *Engine) Claim(playerID, group string, index int) (Update, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.board.Valid(group, index) {
		return Update{}, ErrInvalidClaim
	}

	points, ok := e.board.Reveal(group, index)
	if !ok {
		// perdedor da corrida: ecoa o estado sem mudar nada
		return Update{Outcome: OutcomeNoop, State: e.snapshotLocked()}, nil
	}

	e.takenCount++
	e.players.Ensure(playerID)
	e.players.AppendClaim(playerID, group)
	newBal := e.players.Adjust(playerID, points)
	e.version++

	if e.OnClaim != nil {
		e.OnClaim()
	}
	e.log.Debug("token claimed",
		zap.String("player", playerID),
		zap.String("group", group),
		zap.Int("index", index),
		zap.Int64("points", points),
		zap.Int64("balance", newBal),
	)

	if e.takenCount >= TokensPerRound {
		e.resetLocked()
		return Update{Outcome: OutcomeReset, State: e.snapshotLocked()}, nil
	}
	return Update{Outcome: OutcomeChanged, State: e.snapshotLocked()}, nil
}

// ApplyExternal aceita um overwrite integral do estado vindo de um cliente.
//
// O overwrite só é aceito se o cliente partiu da versão corrente do estado
// (concorrência otimista): versão divergente devolve ErrStaleState e nada
// muda, em vez do clobber silencioso entre dois escritores concorrentes.
// Depois de adotado, vale a pós-condição da rodada: takenCount >= 16 dispara
// o reset normalmente.
func (e *Engine) ApplyExternal(st events.GameState) (Update, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if st.Version != e.version {
		return Update{}, ErrStaleState
	}

	e.adoptLocked(st)
	e.version++

	if e.takenCount >= TokensPerRound {
		e.resetLocked()
		return Update{Outcome: OutcomeReset, State: e.snapshotLocked()}, nil
	}
	return Update{Outcome: OutcomeChanged, State: e.snapshotLocked()}, nil
}

// resetLocked reinicia a rodada: tabuleiro novo, históricos limpos, relógio e
// jogador ativo de volta ao padrão. Saldos e identidades sobrevivem.
func (e *Engine) resetLocked() {
	e.board.Initialize()
	e.takenCount = 0
	e.players.ClearClaims()
	e.currentPlayer = e.firstPlayer
	e.timeLeft = defaultTimeLeft
	e.version++

	if e.OnReset != nil {
		e.OnReset()
	}
	e.log.Info("round reset", zap.String("first_player", e.firstPlayer))
}

// adoptLocked assume o estado recebido palavra por palavra.
func (e *Engine) adoptLocked(st events.GameState) {
	for _, name := range GroupNames {
		e.board.Replace(name, tokensFromWire(st.Group(name)))
	}
	e.takenCount = st.TakenCount
	e.currentPlayer = st.CurrentPlayer
	e.timeLeft = st.TimeLeft
	e.players.ReplaceAll(st.Score, st.TakenRowsByPlayer)
}

func (e *Engine) snapshotLocked() events.GameState {
	return events.GameState{
		CurrentPlayer:     e.currentPlayer,
		Score:             e.players.Scores(),
		DiamondStates:     e.groupToWire(GroupDiamonds),
		GoldBarStates:     e.groupToWire(GroupGoldBars),
		RubyStates:        e.groupToWire(GroupRubies),
		TrophyStates:      e.groupToWire(GroupTrophies),
		TakenRowsByPlayer: e.players.Claims(),
		TakenCount:        e.takenCount,
		TimeLeft:          e.timeLeft,
		Version:           e.version,
	}
}

func (e *Engine) groupToWire(name string) []events.TokenState {
	row := e.board.Tokens(name)
	out := make([]events.TokenState, len(row))
	for i, t := range row {
		out[i] = events.TokenState{
			Kind:      string(t.Kind),
			Points:    t.Points,
			Emoji:     GroupEmoji[name],
			Available: !t.Taken,
		}
	}
	return out
}

func tokensFromWire(row []events.TokenState) []Token {
	out := make([]Token, len(row))
	for i, ts := range row {
		out[i] = Token{
			Kind:   TokenKind(ts.Kind),
			Points: ts.Points,
			Taken:  !ts.Available,
		}
	}
	return out
}
