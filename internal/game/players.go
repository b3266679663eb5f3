package game

import (
	"sort"
	"sync"
)

// player guarda saldo e histórico de fileiras tomadas na rodada corrente.
type player struct {
	balance int64
	claims  []string
}

// Players é o ledger de jogadores: identidade -> saldo + histórico de claims.
// É o único ponto de serialização de mudanças de saldo: tanto o caminho de
// claims do jogo quanto o de apostas passam por aqui.
type Players struct {
	mu    sync.Mutex
	start int64
	byID  map[string]*player
}

// NewPlayers cria o ledger com o saldo inicial configurado.
func NewPlayers(startingBalance int64) *Players {
	return &Players{
		start: startingBalance,
		byID:  make(map[string]*player),
	}
}

// Ensure cria o jogador com saldo inicial e histórico vazio se ainda não
// existir. Idempotente.
func (p *Players) Ensure(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureLocked(id)
}

func (p *Players) ensureLocked(id string) *player {
	pl, ok := p.byID[id]
	if !ok {
		pl = &player{balance: p.start}
		p.byID[id] = pl
	}
	return pl
}

// Known informa se a identidade já foi registrada (sem criar).
func (p *Players) Known(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.byID[id]
	return ok
}

// Balance devolve o saldo atual, criando o jogador se necessário.
func (p *Players) Balance(id string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ensureLocked(id).balance
}

// Adjust soma delta ao saldo e trava o resultado em zero como piso.
// Tentativas de overdraft não geram erro: o clamp é a política de recuperação.
// Devolve o saldo resultante.
func (p *Players) Adjust(id string, delta int64) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	pl := p.ensureLocked(id)
	pl.balance += delta
	if pl.balance < 0 {
		pl.balance = 0
	}
	return pl.balance
}

// TryDebit debita amount somente se o saldo cobre o valor, com checagem e
// débito na mesma seção crítica. Um débito recusado não altera o saldo, então
// o caminho de apostas nunca depende do clamp. Devolve o saldo resultante e
// se o débito aconteceu.
func (p *Players) TryDebit(id string, amount int64) (int64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pl := p.ensureLocked(id)
	if pl.balance < amount {
		return pl.balance, false
	}
	pl.balance -= amount
	return pl.balance, true
}

// AppendClaim registra uma fileira tomada pelo jogador nesta rodada.
func (p *Players) AppendClaim(id, group string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pl := p.ensureLocked(id)
	pl.claims = append(pl.claims, group)
}

// ClearClaims limpa o histórico de claims de todos os jogadores (reset da
// rodada). Saldos e identidades são preservados.
func (p *Players) ClearClaims() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pl := range p.byID {
		pl.claims = nil
	}
}

// List devolve as identidades conhecidas em ordem estável.
func (p *Players) List() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.byID))
	for id := range p.byID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Scores devolve uma cópia do mapa identidade -> saldo.
func (p *Players) Scores() map[string]int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]int64, len(p.byID))
	for id, pl := range p.byID {
		out[id] = pl.balance
	}
	return out
}

// Claims devolve uma cópia do mapa identidade -> fileiras tomadas.
func (p *Players) Claims() map[string][]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string][]string, len(p.byID))
	for id, pl := range p.byID {
		cp := make([]string, len(pl.claims))
		copy(cp, pl.claims)
		out[id] = cp
	}
	return out
}

// ReplaceAll sobrescreve saldos e históricos em bloco (overwrite externo).
func (p *Players) ReplaceAll(scores map[string]int64, claims map[string][]string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byID = make(map[string]*player, len(scores))
	for id, bal := range scores {
		p.byID[id] = &player{balance: bal}
	}
	for id, cs := range claims {
		pl := p.ensureLocked(id)
		pl.claims = append([]string(nil), cs...)
	}
}
