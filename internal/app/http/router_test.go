package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cobuilt/quote-bot/internal/app/bot"
	"cobuilt/quote-bot/internal/app/config"
	"cobuilt/quote-bot/internal/domain/approval"
	"cobuilt/quote-bot/internal/domain/quote"
	"cobuilt/quote-bot/internal/infra/store/file"
)

type recordingSender struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingSender) SendMessage(_ context.Context, _ int64, text string, _ any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingSender) EditMessageText(context.Context, int64, int64, string) error { return nil }

func (r *recordingSender) AnswerCallback(context.Context, string, string, bool) error { return nil }

func (r *recordingSender) SendDocument(context.Context, int64, string, []byte, string, any) error {
	return nil
}

type noPDF struct{}

func (noPDF) Generate(quote.Quote) ([]byte, error) { return nil, nil }

func newTestRouter(t *testing.T, secret string) (http.Handler, *recordingSender) {
	t.Helper()
	st, err := file.New(filepath.Join(t.TempDir(), "bot_data.json"))
	require.NoError(t, err)
	sender := &recordingSender{}
	admins := []int64{100}
	b := bot.New(st, approval.New(st, admins), sender, noPDF{}, admins)
	return NewRouter(config.Config{TelegramWebhookSecret: secret}, b), sender
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestWebhookSecret(t *testing.T) {
	r, _ := newTestRouter(t, "s3cret")
	body := `{"update_id":1}`

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/telegram/webhook", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/telegram/webhook", strings.NewReader(body))
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "s3cret")
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookBadJSON(t *testing.T) {
	r, _ := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/telegram/webhook", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookRoutesMessage(t *testing.T) {
	r, sender := newTestRouter(t, "")
	body := `{"update_id":2,"message":{"message_id":5,"from":{"id":42,"username":"builder"},"chat":{"id":10},"text":"/start"}}`

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/telegram/webhook", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sender.texts, 1)
	assert.Contains(t, sender.texts[0], "Welcome")
	assert.Contains(t, sender.texts[0], "builder")
}

func TestWebhookRoutesCallback(t *testing.T) {
	r, sender := newTestRouter(t, "")
	body := `{"update_id":3,"callback_query":{"id":"cb-1","from":{"id":42,"first_name":"Builder"},"message":{"message_id":6,"chat":{"id":10},"text":"old"},"data":"start_over"}}`

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/telegram/webhook", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, sender.texts)
	assert.Contains(t, sender.texts[0], "customer/company name")
}

func TestWebhookIgnoresUnknownUpdate(t *testing.T) {
	r, sender := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/telegram/webhook", strings.NewReader(`{"update_id":4}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, sender.texts)
}
