package resend_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/koordynuj/koordynuj-api/pkg/httpclient"
	"github.com/koordynuj/koordynuj-api/pkg/logger"
	"github.com/koordynuj/koordynuj-api/pkg/resend"
	"github.com/stretchr/testify/assert"
)

func init() {
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func TestClient_Send(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-123"}`))
	}))
	defer server.Close()

	client := resend.NewClientWithEndpoint("re_test_key", server.URL, httpclient.NewStandardClient())

	err := client.Send(&resend.Message{
		From:    "Formularz WWW <formularz@koordynuj-zdrowie.pl>",
		To:      []string{"kontakt@koordynuj-zdrowie.pl"},
		Subject: "Nowa wiadomość od Jan",
		ReplyTo: "jan@x.pl",
		HTML:    "<p>Hi</p>",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Bearer re_test_key", gotAuth)
	assert.Equal(t, "Nowa wiadomość od Jan", gotBody["subject"])
	assert.Equal(t, "jan@x.pl", gotBody["reply_to"])
	assert.Equal(t, []any{"kontakt@koordynuj-zdrowie.pl"}, gotBody["to"])
}

func TestClient_Send_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer server.Close()

	client := resend.NewClientWithEndpoint("re_test_key", server.URL, httpclient.NewStandardClient())

	err := client.Send(&resend.Message{
		From: "nope",
		To:   []string{"kontakt@koordynuj-zdrowie.pl"},
		HTML: "<p>Hi</p>",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid from address")
}

func TestClient_Send_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed before use

	client := resend.NewClientWithEndpoint("re_test_key", server.URL, httpclient.NewStandardClient())

	err := client.Send(&resend.Message{To: []string{"x@y.pl"}})

	assert.Error(t, err)
}
