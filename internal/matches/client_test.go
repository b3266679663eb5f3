package matches

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsAuthToken(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Auth-Token")
		fmt.Fprint(w, `{"matches":[]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token")
	_, err := c.Live(context.Background(), "PL")
	require.NoError(t, err)
	assert.Equal(t, "secret-token", gotToken)
}

func TestClientListingMergesLiveAndFinished(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/competitions/PD/matches", r.URL.Path)
		switch r.URL.Query().Get("status") {
		case "LIVE":
			fmt.Fprint(w, `{"matches":[{"id":10,"status":"LIVE"}]}`)
		case "FINISHED":
			// janela retroativa de 7 dias
			from, err := time.Parse("2006-01-02", r.URL.Query().Get("dateFrom"))
			require.NoError(t, err)
			to, err := time.Parse("2006-01-02", r.URL.Query().Get("dateTo"))
			require.NoError(t, err)
			assert.InDelta(t, 7*24, to.Sub(from).Hours(), 25)
			fmt.Fprint(w, `{"matches":[{"id":11,"status":"FINISHED"},{"id":12,"status":"FINISHED"}]}`)
		default:
			t.Errorf("status inesperado: %q", r.URL.Query().Get("status"))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	got, err := c.Listing(context.Background(), "PD")
	require.NoError(t, err)
	require.Len(t, got.Live, 1)
	require.Len(t, got.Finished, 2)
	assert.Equal(t, int64(10), got.Live[0].ID)
	assert.Equal(t, int64(11), got.Finished[0].ID)
}

func TestClientNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	_, err := c.Live(context.Background(), "PL")
	assert.Error(t, err)
}
