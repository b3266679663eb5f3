package matches

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/radieske/treasure-table-poc/pkg/contracts/events"
)

// finishedWindow é a janela retroativa consultada para partidas encerradas.
const finishedWindow = 7 * 24 * time.Hour

// Client consulta o provedor de partidas (API estilo football-data v4).
// Somente leitura: nenhuma escrita acontece do lado do provedor.
type Client struct {
	BaseURL string
	Token   string // enviado no header X-Auth-Token
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// matchesResponse espelha o envelope de resposta do provedor.
type matchesResponse struct {
	Matches []events.Match `json:"matches"`
}

func (c *Client) fetch(ctx context.Context, url string) ([]events.Match, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Auth-Token", c.Token)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("matches provider http %d", res.StatusCode)
	}

	var out matchesResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	return out.Matches, nil
}

// Live busca as partidas ao vivo da liga.
func (c *Client) Live(ctx context.Context, leagueCode string) ([]events.Match, error) {
	url := fmt.Sprintf("%s/competitions/%s/matches?status=LIVE", c.BaseURL, leagueCode)
	return c.fetch(ctx, url)
}

// Finished busca as partidas encerradas da liga nos últimos 7 dias.
func (c *Client) Finished(ctx context.Context, leagueCode string) ([]events.Match, error) {
	now := time.Now()
	from := now.Add(-finishedWindow)
	url := fmt.Sprintf("%s/competitions/%s/matches?status=FINISHED&dateFrom=%s&dateTo=%s",
		c.BaseURL, leagueCode, from.Format("2006-01-02"), now.Format("2006-01-02"))
	return c.fetch(ctx, url)
}

// Listing consulta ao vivo e encerradas e devolve as listas combinadas.
func (c *Client) Listing(ctx context.Context, leagueCode string) (events.MatchList, error) {
	live, err := c.Live(ctx, leagueCode)
	if err != nil {
		return events.MatchList{}, err
	}
	finished, err := c.Finished(ctx, leagueCode)
	if err != nil {
		return events.MatchList{}, err
	}
	return events.MatchList{Live: live, Finished: finished}, nil
}
