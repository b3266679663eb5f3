package matches

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/treasure-table-poc/internal/matches/cache"
	"github.com/radieske/treasure-table-poc/pkg/contracts/events"
)

// Refresher recebe o snapshot de partidas ao vivo de uma liga (o ledger de
// apostas implementa).
type Refresher interface {
	RefreshMatches(leagueCode string, ms []events.Match)
}

// Broadcaster repassa o snapshot para os observadores conectados.
type Broadcaster interface {
	BroadcastMatchesUpdated(upd events.MatchesUpdated)
}

// Poller consulta o provedor em intervalo fixo, independente da atividade dos
// jogadores, e empurra snapshots somente-leitura para o cache e o broadcast.
//
// Cada liga é tratada isoladamente: falha em uma não aborta as demais; a liga
// que falhou fica com o cache stale e tenta de novo só no próximo tick.
type Poller struct {
	Client   *Client
	Leagues  []string
	Interval time.Duration
	Sink     Refresher
	Hub      Broadcaster
	Mirror   *cache.RedisCache // opcional
	Log      *zap.Logger

	OnRefresh func()              // métrica: liga atualizada
	OnError   func(league string) // métrica: falha de fetch
}

// Run roda o loop de polling até o contexto ser cancelado.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.Log.Info("match poller stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	for _, league := range p.Leagues {
		live, err := p.Client.Live(ctx, league)
		if err != nil {
			// cache fica stale; não propaga pros clientes
			p.Log.Warn("match fetch failed",
				zap.String("league", league),
				zap.Error(err),
			)
			if p.OnError != nil {
				p.OnError(league)
			}
			continue
		}

		p.Sink.RefreshMatches(league, live)

		if p.Mirror != nil {
			if err := p.Mirror.SetLive(ctx, league, live); err != nil {
				p.Log.Warn("redis mirror set failed", zap.String("league", league), zap.Error(err))
			}
		}

		p.Hub.BroadcastMatchesUpdated(events.MatchesUpdated{
			LeagueCode: league,
			Matches:    live,
		})

		if p.OnRefresh != nil {
			p.OnRefresh()
		}
	}
}
