package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/employee-records-api/internal/application/auth"
	"github.com/employee-records-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) RequestPin(ctx context.Context, identity string) error {
	return m.Called(ctx, identity).Error(0)
}

func (m *mockAuthSvc) VerifyPin(ctx context.Context, identity, code string) (string, error) {
	args := m.Called(ctx, identity, code)
	return args.String(0), args.Error(1)
}

var _ auth.Service = (*mockAuthSvc)(nil)

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// --- RequestPin ---

func TestRequestPin_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RequestPin", mock.Anything, "a@x.com").Return(nil)

	rr := postJSON(t, NewAuthHandler(svc).RequestPin, `{"identity":"a@x.com"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	var env AuthEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Success)
	svc.AssertExpectations(t)
}

func TestRequestPin_InvalidBody_400(t *testing.T) {
	rr := postJSON(t, NewAuthHandler(&mockAuthSvc{}).RequestPin, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRequestPin_MissingIdentity_400(t *testing.T) {
	rr := postJSON(t, NewAuthHandler(&mockAuthSvc{}).RequestPin, `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRequestPin_DeliveryFailure_StillAnswersSuccess(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RequestPin", mock.Anything, "a@x.com").
		Return(fmt.Errorf("deliver pin: %w", domain.ErrDelivery))

	rr := postJSON(t, NewAuthHandler(svc).RequestPin, `{"identity":"a@x.com"}`)

	// Delivery problems never tell a caller whether the identity exists.
	assert.Equal(t, http.StatusOK, rr.Code)
	var env AuthEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Success)
}

// --- VerifyPin ---

func TestVerifyPin_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyPin", mock.Anything, "a@x.com", "048213").Return("signed-token", nil)

	rr := postJSON(t, NewAuthHandler(svc).VerifyPin, `{"identity":"a@x.com","code":"048213"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	var env AuthEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "signed-token", env.AccessToken)
	assert.Equal(t, "bearer", env.TokenType)
}

func TestVerifyPin_InvalidCredential_401(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyPin", mock.Anything, "a@x.com", "000000").
		Return("", fmt.Errorf("invalid credential: %w", domain.ErrUnauthorized))

	rr := postJSON(t, NewAuthHandler(svc).VerifyPin, `{"identity":"a@x.com","code":"000000"}`)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	var env AuthEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Empty(t, env.AccessToken)
}

func TestVerifyPin_MissingCode_400(t *testing.T) {
	rr := postJSON(t, NewAuthHandler(&mockAuthSvc{}).VerifyPin, `{"identity":"a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVerifyPin_InternalError_500(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyPin", mock.Anything, "a@x.com", "048213").
		Return("", errors.New("signer exploded"))

	rr := postJSON(t, NewAuthHandler(svc).VerifyPin, `{"identity":"a@x.com","code":"048213"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
