package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/treasure-table-poc/internal/game"
	"github.com/radieske/treasure-table-poc/internal/httpapi"
	"github.com/radieske/treasure-table-poc/internal/matches"
	mcache "github.com/radieske/treasure-table-poc/internal/matches/cache"
	"github.com/radieske/treasure-table-poc/internal/shared/cache"
	"github.com/radieske/treasure-table-poc/internal/shared/config"
	"github.com/radieske/treasure-table-poc/internal/shared/kafka"
	"github.com/radieske/treasure-table-poc/internal/shared/logger"
	"github.com/radieske/treasure-table-poc/internal/shared/metrics"
	"github.com/radieske/treasure-table-poc/internal/wagering"
	"github.com/radieske/treasure-table-poc/internal/wagering/producer"
	"github.com/radieske/treasure-table-poc/internal/ws"
)

// Métricas Prometheus do serviço, ligadas nos componentes via callbacks
var (
	claimsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "table_claims_total",
		Help: "Tokens revelados com sucesso",
	})
	resetsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "table_round_resets_total",
		Help: "Rodadas completadas e reiniciadas",
	})
	betsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "table_bets_placed_total",
		Help: "Apostas aceitas e debitadas",
	})
	wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "table_ws_connections",
		Help: "Clientes WebSocket conectados",
	})
	pollRefreshes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "table_match_refreshes_total",
		Help: "Atualizações de cache de partidas por liga",
	})
	pollErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "table_match_poll_errors_total",
		Help: "Falhas de fetch no provedor de partidas",
	}, []string{"league"})
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	prometheus.MustRegister(claimsTotal, resetsTotal, betsTotal, wsConnections, pollRefreshes, pollErrors)

	// estado da mesa: ledger de jogadores + engine da rodada
	players := game.NewPlayers(cfg.StartingBalance)
	for _, p := range cfg.SeedPlayers {
		players.Ensure(p)
	}
	engine := game.NewEngine(log, players, cfg.FirstPlayer)
	engine.OnClaim = claimsTotal.Inc
	engine.OnReset = resetsTotal.Inc

	bets := wagering.NewLedger(log, players)
	bets.OnBet = betsTotal.Inc

	// Kafka opcional: stream de apostas aceitas
	var publ *producer.KafkaPublisher
	if cfg.KafkaBrokers != "" {
		writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlaced)
		defer writer.Close()
		publ = producer.NewKafkaPublisher(writer, cfg.TopicBetPlaced)
		log.Info("kafka writer ready", zap.String("topic", cfg.TopicBetPlaced))
	}

	// Redis opcional: espelho do cache de partidas ao vivo
	var rdb *redis.Client
	var mirror *mcache.RedisCache
	if cfg.RedisAddr != "" {
		rdb, err = cache.ConnectRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatal("failed to connect redis", zap.Error(err))
		}
		defer rdb.Close()
		mirror = mcache.NewRedisCache(rdb, 5*time.Minute)
		log.Info("redis connected")
	}

	hub := ws.NewHub(log, engine, bets, publ)
	hub.OnConnect = wsConnections.Inc
	hub.OnDisconnect = wsConnections.Dec

	mclient := matches.NewClient(cfg.FootballAPIURL, cfg.FootballAPIToken)
	api := httpapi.NewServer(log, bets, mclient, mirror, publ)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// poller de partidas: intervalo fixo, falha por liga isolada
	poller := &matches.Poller{
		Client:    mclient,
		Leagues:   cfg.LeagueCodes,
		Interval:  cfg.PollInterval,
		Sink:      bets,
		Hub:       hub,
		Mirror:    mirror,
		Log:       log,
		OnRefresh: pollRefreshes.Inc,
		OnError: func(league string) {
			pollErrors.WithLabelValues(league).Inc()
		},
	}
	go poller.Run(ctx)

	// metrics/health em porta separada
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if rdb != nil {
			return rdb.Ping(ctx).Err()
		}
		return nil
	})
	log.Info("metrics/health server starting", zap.String("addr", ":"+cfg.MetricsPort))

	// servidor público: WebSocket + REST na mesma porta
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	mux.Handle("/", api.Router())

	addr := ":" + cfg.HTTPPort
	log.Info("treasure-table listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		log.Fatal("public server failed", zap.Error(err))
	}
}
