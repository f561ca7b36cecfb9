package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/cmu-oauth/session-front/internal/idp"
	"github.com/cmu-oauth/session-front/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ctxKey struct{}

// The handler passes the request context through to both provider calls,
// so a disconnecting browser cancels the outbound requests.
func TestSignIn_ProviderCallsUseRequestContext(t *testing.T) {
	p := &testutil.MockProvider{}
	fromRequest := mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Value(ctxKey{}) == "marker"
	})
	p.On("ExchangeCode", fromRequest, "the-code").Return("at-1", true).Once()
	p.On("FetchProfile", fromRequest, "at-1").Return(&idp.Profile{
		Account:     "a@cmu.ac.th",
		FirstNameEN: "A",
		LastNameEN:  "B",
	}, true).Once()

	h := newTestRouter(t, p, newTestCodec(t))
	req := newJSONRequest(http.MethodPost, "/api/signIn", `{"authorizationCode":"the-code"}`)
	req = req.WithContext(context.WithValue(req.Context(), ctxKey{}, "marker"))
	w := serveRequest(h, req)

	assert.Equal(t, http.StatusOK, w.Code)
	p.AssertExpectations(t)
}

func TestSignIn_ExchangeFailureSkipsProfile(t *testing.T) {
	p := &testutil.MockProvider{}
	p.On("ExchangeCode", mock.Anything, "expired-code").Return("", false).Once()

	h := newTestRouter(t, p, newTestCodec(t))
	w := serve(h, http.MethodPost, "/api/signIn", `{"authorizationCode":"expired-code"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	p.AssertExpectations(t)
	p.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything)
}

func TestSignIn_InvalidCodeMakesNoProviderCall(t *testing.T) {
	p := &testutil.MockProvider{}

	h := newTestRouter(t, p, newTestCodec(t))
	w := serve(h, http.MethodPost, "/api/signIn", `{"authorizationCode":42}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	p.AssertNotCalled(t, "ExchangeCode", mock.Anything, mock.Anything)
}
