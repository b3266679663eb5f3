package game

import "math/rand"

// Identificadores das fileiras do tabuleiro, como usados no protocolo dos clientes.
const (
	GroupDiamonds = "diamondStates"
	GroupGoldBars = "goldBarStates"
	GroupRubies   = "rubyStates"
	GroupTrophies = "trophyStates"
)

const (
	GroupSize      = 4
	TokensPerRound = 16

	WinPoints  int64 = 20000
	LosePoints int64 = -23000
)

// GroupNames define a ordem fixa em que o embaralhamento é fatiado em fileiras.
var GroupNames = []string{GroupDiamonds, GroupGoldBars, GroupRubies, GroupTrophies}

// GroupEmoji é o ícone de cada fileira enviado aos clientes.
var GroupEmoji = map[string]string{
	GroupDiamonds: "💎",
	GroupGoldBars: "💰",
	GroupRubies:   "🔴",
	GroupTrophies: "🏆",
}

type TokenKind string

const (
	KindWin  TokenKind = "win"
	KindLose TokenKind = "lose"
)

// Token é uma peça do tabuleiro. Imutável depois de gerada, exceto Taken,
// que vira true exatamente uma vez por rodada.
type Token struct {
	Kind   TokenKind
	Points int64
	Taken  bool
}

// Board é a grade de tokens de uma rodada: 4 fileiras de 4 tokens ocultos.
// Não é thread-safe; o Engine serializa o acesso.
type Board struct {
	groups map[string][]Token
}

// NewBoard devolve um tabuleiro já embaralhado.
func NewBoard() *Board {
	b := &Board{}
	b.Initialize()
	return b
}

// Initialize gera 8 tokens win e 8 lose, embaralha uniformemente
// (Fisher-Yates via rand.Shuffle) e fatia nas 4 fileiras fixas.
// Substitui todo o conteúdo anterior do tabuleiro.
func (b *Board) Initialize() {
	tokens := make([]Token, 0, TokensPerRound)
	for i := 0; i < TokensPerRound/2; i++ {
		tokens = append(tokens, Token{Kind: KindWin, Points: WinPoints})
	}
	for i := 0; i < TokensPerRound/2; i++ {
		tokens = append(tokens, Token{Kind: KindLose, Points: LosePoints})
	}
	rand.Shuffle(len(tokens), func(i, j int) {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	})

	b.groups = make(map[string][]Token, len(GroupNames))
	for gi, name := range GroupNames {
		row := make([]Token, GroupSize)
		copy(row, tokens[gi*GroupSize:(gi+1)*GroupSize])
		b.groups[name] = row
	}
}

// Valid informa se (group, index) endereça uma posição existente.
func (b *Board) Valid(group string, index int) bool {
	row, ok := b.groups[group]
	return ok && index >= 0 && index < len(row)
}

// Reveal marca o token como tomado e devolve seus pontos. Se o token já
// foi revelado (ou a posição é inválida) não altera nada e devolve ok=false:
// é a política de idempotência para claims duplicados/concorrentes.
func (b *Board) Reveal(group string, index int) (int64, bool) {
	if !b.Valid(group, index) {
		return 0, false
	}
	t := &b.groups[group][index]
	if t.Taken {
		return 0, false
	}
	t.Taken = true
	return t.Points, true
}

// Tokens devolve uma cópia da fileira pedida (nil se não existir).
func (b *Board) Tokens(group string) []Token {
	row, ok := b.groups[group]
	if !ok {
		return nil
	}
	out := make([]Token, len(row))
	copy(out, row)
	return out
}

// Replace sobrescreve uma fileira inteira (usado pelo overwrite externo).
func (b *Board) Replace(group string, row []Token) {
	if _, ok := b.groups[group]; !ok {
		return
	}
	cp := make([]Token, len(row))
	copy(cp, row)
	b.groups[group] = cp
}

// TakenCount conta os tokens já revelados em todas as fileiras.
func (b *Board) TakenCount() int {
	n := 0
	for _, row := range b.groups {
		for _, t := range row {
			if t.Taken {
				n++
			}
		}
	}
	return n
}
