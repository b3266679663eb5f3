package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	ctopics "github.com/radieske/treasure-table-poc/pkg/contracts/topics"
)

// Config centraliza variáveis de ambiente e parâmetros de execução do serviço
// Inclui portas, provedor de partidas, ligas, jogadores iniciais e integrações opcionais
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string

	// Portas
	HTTPPort    string // porta pública (WS + REST)
	MetricsPort string // porta exclusiva para /metrics e /healthz

	// Provedor de partidas (football-data v4)
	FootballAPIURL   string
	FootballAPIToken string
	LeagueCodes      []string      // ligas monitoradas pelo poller
	PollInterval     time.Duration // cadência do poller

	// Jogo
	SeedPlayers     []string // jogadores criados na subida do serviço
	FirstPlayer     string   // jogador ativo após cada reset
	StartingBalance int64    // saldo inicial de cada jogador

	// Integrações opcionais (desligadas quando vazias)
	RedisAddr      string // espelho do cache de partidas
	KafkaBrokers   string // "a:9092,b:9092"
	TopicBetPlaced string
}

// Load carrega variáveis de ambiente e define defaults
func Load() Config {
	return Config{
		Env:         getEnv("ENV", "local"),
		ServiceName: getEnv("SERVICE_NAME", "treasure-table"),

		HTTPPort:    getEnv("HTTP_PORT", "3000"),
		MetricsPort: getEnv("METRICS_PORT", "9095"),

		FootballAPIURL:   getEnv("FOOTBALL_API_URL", "https://api.football-data.org/v4"),
		FootballAPIToken: getEnv("FOOTBALL_API_TOKEN", ""),
		LeagueCodes:      splitCSV(getEnv("LEAGUE_CODES", "CL,PL,PD,SA,BL1,FL1")),
		PollInterval:     getDuration("POLL_INTERVAL", time.Minute),

		SeedPlayers:     splitCSV(getEnv("SEED_PLAYERS", "Ruperto,Juan,Mauricio")),
		FirstPlayer:     getEnv("FIRST_PLAYER", "Ruperto"),
		StartingBalance: getInt64("STARTING_BALANCE", 60000),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		KafkaBrokers:   getEnv("KAFKA_BROKERS", ""),
		TopicBetPlaced: getEnv("KAFKA_TOPIC_BET_PLACED", ctopics.BetPlaced),
	}
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getInt64(key string, def int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// splitCSV converte "a,b,c" em slice, ignorando entradas vazias
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
