package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/treasure-table-poc/internal/httpapi/dto"
	"github.com/radieske/treasure-table-poc/internal/matches"
	mcache "github.com/radieske/treasure-table-poc/internal/matches/cache"
	"github.com/radieske/treasure-table-poc/internal/wagering"
	"github.com/radieske/treasure-table-poc/internal/wagering/producer"
	"github.com/radieske/treasure-table-poc/pkg/contracts/events"
)

// Server expõe a superfície REST síncrona: aposta e listagem de partidas.
type Server struct {
	log     *zap.Logger
	bets    *wagering.Ledger
	matches *matches.Client
	mirror  *mcache.RedisCache       // opcional (nil desliga)
	publ    *producer.KafkaPublisher // opcional (nil desliga)
}

// NewServer instancia a API REST.
func NewServer(log *zap.Logger, bets *wagering.Ledger, mc *matches.Client, mirror *mcache.RedisCache, publ *producer.KafkaPublisher) *Server {
	return &Server{log: log, bets: bets, matches: mc, mirror: mirror, publ: publ}
}

// Router retorna o roteador HTTP com os endpoints REST.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/bet", s.placeBet)                    // aposta síncrona
	r.Get("/api/matches/{leagueCode}", s.listMatches) // ao vivo + encerradas (7 dias)
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// placeBet registra uma aposta. Diferente do caminho WebSocket, apostador
// desconhecido aqui é rejeitado, nunca criado implicitamente.
func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}
	if req.UserID == "" || req.MatchID == "" || req.BetType == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payload"})
		return
	}

	betID, balance, err := s.bets.PlaceBetStrict(req.UserID, req.MatchID, req.BetType, req.Amount)
	switch {
	case errors.Is(err, wagering.ErrUnknownBettor):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "unknown user"})
		return
	case errors.Is(err, wagering.ErrInsufficientFunds):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "insufficient balance"})
		return
	case errors.Is(err, wagering.ErrInvalidStake):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid stake"})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := s.publ.PublishBetPlaced(r.Context(), betPlacedEvent(req, betID, balance)); err != nil {
		s.log.Warn("bet_placed publish failed", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, dto.PlaceBetResponse{BetID: betID, CurrentBalance: balance})
}

// listMatches consulta o provedor e devolve ao vivo + encerradas (7 dias).
// Efeito colateral: atualiza o cache de partidas ao vivo da liga.
// Se o provedor falha e o espelho Redis tem snapshot da liga, serve o snapshot.
func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	leagueCode := chi.URLParam(r, "leagueCode")

	listing, err := s.matches.Listing(r.Context(), leagueCode)
	if err != nil {
		s.log.Warn("match listing failed", zap.String("league", leagueCode), zap.Error(err))
		if s.mirror != nil {
			if live, ok, merr := s.mirror.GetLive(r.Context(), leagueCode); merr == nil && ok {
				s.log.Info("serving mirrored live matches", zap.String("league", leagueCode))
				writeJSON(w, http.StatusOK, dto.MatchesResponse{Matches: events.MatchList{Live: live}})
				return
			}
		}
		writeJSON(w, http.StatusBadGateway, dto.ErrorResponse{Error: "failed to fetch matches"})
		return
	}

	s.bets.RefreshMatches(leagueCode, listing.Live)

	writeJSON(w, http.StatusOK, dto.MatchesResponse{Matches: listing})
}

func betPlacedEvent(req dto.PlaceBetRequest, betID string, balance int64) events.BetPlaced {
	return events.BetPlaced{
		BetID:   betID,
		UserID:  req.UserID,
		MatchID: req.MatchID,
		BetType: req.BetType,
		Amount:  req.Amount,
		Balance: balance,
	}
}
