package www

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tkarvinen/spotadvisor-go/config"
	"github.com/tkarvinen/spotadvisor-go/types"
)

type stubAdviser struct {
	msg     string
	err     error
	lastReq types.WindowRequest
	calls   int
}

func (s *stubAdviser) Advise(ctx context.Context, req types.WindowRequest) (string, error) {
	s.calls++
	s.lastReq = req
	return s.msg, s.err
}

func adviseRequest(t *testing.T, handler http.Handler, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func newAdviseHandler(stub *stubAdviser) http.Handler {
	return bearerAuth("secret", NewAdviseHandler(slog.Default(), config.AppConfigAdvisor{}, stub))
}

func TestAdviseHandlerOk(t *testing.T) {
	stub := &stubAdviser{msg: "Halvin jakso alkaa tänään kello 13:00."}
	rec := adviseRequest(t, newAdviseHandler(stub), "/?minutes=60&lang=fi", "secret")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, stub.msg, strings.TrimSpace(rec.Body.String()))
	assert.Equal(t, 60, stub.lastReq.DurationMinutes)
	assert.Equal(t, "fi", stub.lastReq.Language)
	assert.False(t, stub.lastReq.Now.IsZero())
}

func TestAdviseHandlerDefaults(t *testing.T) {
	stub := &stubAdviser{msg: "ok"}
	rec := adviseRequest(t, newAdviseHandler(stub), "/", "secret")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 180, stub.lastReq.DurationMinutes)
	assert.Equal(t, "fi", stub.lastReq.Language)
}

func TestAdviseHandlerRejectsMissingToken(t *testing.T) {
	stub := &stubAdviser{msg: "ok"}
	rec := adviseRequest(t, newAdviseHandler(stub), "/", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, stub.calls)
}

func TestAdviseHandlerRejectsWrongToken(t *testing.T) {
	stub := &stubAdviser{msg: "ok"}
	rec := adviseRequest(t, newAdviseHandler(stub), "/", "guessed")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdviseHandlerEmptyTokenDisablesAuth(t *testing.T) {
	stub := &stubAdviser{msg: "ok"}
	handler := bearerAuth("", NewAdviseHandler(slog.Default(), config.AppConfigAdvisor{}, stub))
	rec := adviseRequest(t, handler, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdviseHandlerRejectsBadMinutes(t *testing.T) {
	stub := &stubAdviser{msg: "ok"}
	for _, target := range []string{"/?minutes=abc", "/?minutes=0", "/?minutes=-15"} {
		rec := adviseRequest(t, newAdviseHandler(stub), target, "secret")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
	assert.Equal(t, 0, stub.calls)
}

func TestAdviseHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: de", types.ErrUnsupportedLanguage), want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: need 12 slots", types.ErrInsufficientHorizon), want: http.StatusServiceUnavailable},
		{err: fmt.Errorf("%w: timeout", types.ErrUpstreamUnavailable), want: http.StatusBadGateway},
		{err: fmt.Errorf("%w: bad json", types.ErrUpstreamMalformed), want: http.StatusBadGateway},
		{err: fmt.Errorf("something else"), want: http.StatusInternalServerError},
	}

	for _, c := range cases {
		stub := &stubAdviser{err: c.err}
		rec := adviseRequest(t, newAdviseHandler(stub), "/", "secret")
		assert.Equal(t, c.want, rec.Code, "error %v", c.err)
	}
}

func TestAdviseHandlerUnknownPath(t *testing.T) {
	stub := &stubAdviser{msg: "ok"}
	rec := adviseRequest(t, newAdviseHandler(stub), "/nope", "secret")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, stub.calls)
}
