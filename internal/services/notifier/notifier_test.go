package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReturnsNoopWithoutWebhook(t *testing.T) {
	sink := New("")
	require.IsType(t, Noop{}, sink)
	require.NoError(t, sink.Notify(context.Background(), "ignored"))
}

func TestSlackPostsMessage(t *testing.T) {
	var got struct {
		Text string `json:"text"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	sink := New(srv.URL)
	require.NoError(t, sink.Notify(context.Background(), "DCA KRW-BTC: 19990 KRW market buy accepted"))
	require.Equal(t, "DCA KRW-BTC: 19990 KRW market buy accepted", got.Text)
}

func TestSlackDeliveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := New(srv.URL).Notify(context.Background(), "msg")
	require.Error(t, err)
}
