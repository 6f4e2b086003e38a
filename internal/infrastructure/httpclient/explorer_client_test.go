package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExplorerClient_RequestShape(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"hash":"0xabc"}],"token":"cursor-2"}`))
	}))
	defer server.Close()

	client := NewExplorerClient(server.URL, 2*time.Second, zap.NewNop(), 10, 5)

	page, err := client.GetAddressTransactions(
		context.Background(), "ETH", "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", 20, "cursor-1")

	require.NoError(t, err)
	assert.Equal(t, "/blockchain/v4/eth/address/0x742d35Cc6634C0532925a3b844Bc454e4438f44e/txs", gotPath)
	assert.Equal(t, "cursor-1", gotQuery.Get("token"))
	assert.Equal(t, "20", gotQuery.Get("batch_size"))
	assert.Equal(t, "descending", gotQuery.Get("order"))
	assert.Equal(t, "true", gotQuery.Get("noinput"))
	assert.Equal(t, "true", gotQuery.Get("filtering"))

	require.Len(t, page.Data, 1)
	assert.Equal(t, "cursor-2", page.Token)
}

func TestExplorerClient_FirstPageOmitsToken(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[],"token":""}`))
	}))
	defer server.Close()

	client := NewExplorerClient(server.URL, 2*time.Second, zap.NewNop(), 10, 5)

	_, err := client.GetAddressTransactions(
		context.Background(), "eth", "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", 20, "")

	require.NoError(t, err)
	assert.False(t, gotQuery.Has("token"))
}
