package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/employee-records-api/internal/domain"
	"github.com/employee-records-api/internal/infrastructure/pinstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockPinStore struct{ mock.Mock }

func (m *mockPinStore) Issue(identity string) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

func (m *mockPinStore) Verify(identity, submitted string) pinstore.Outcome {
	return m.Called(identity, submitted).Get(0).(pinstore.Outcome)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Deliver(ctx context.Context, identity, code string) error {
	return m.Called(ctx, identity, code).Error(0)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(subject string) (string, error) {
	args := m.Called(subject)
	return args.String(0), args.Error(1)
}

// --- RequestPin ---

func TestRequestPin_HappyPath(t *testing.T) {
	ps := &mockPinStore{}
	nf := &mockNotifier{}
	ps.On("Issue", "a@x.com").Return("048213", nil)
	nf.On("Deliver", mock.Anything, "a@x.com", "048213").Return(nil)

	svc := NewService(ps, nf, nil)
	err := svc.RequestPin(context.Background(), "a@x.com")

	require.NoError(t, err)
	ps.AssertExpectations(t)
	nf.AssertExpectations(t)
}

func TestRequestPin_NormalizesIdentity(t *testing.T) {
	ps := &mockPinStore{}
	nf := &mockNotifier{}
	ps.On("Issue", "a@x.com").Return("111111", nil)
	nf.On("Deliver", mock.Anything, "a@x.com", "111111").Return(nil)

	svc := NewService(ps, nf, nil)
	err := svc.RequestPin(context.Background(), "  A@X.Com ")

	require.NoError(t, err)
	ps.AssertExpectations(t)
}

func TestRequestPin_EmptyIdentity_BadRequest(t *testing.T) {
	svc := NewService(&mockPinStore{}, &mockNotifier{}, nil)
	err := svc.RequestPin(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestRequestPin_DeliveryFailure_NoRollback(t *testing.T) {
	ps := &mockPinStore{}
	nf := &mockNotifier{}
	ps.On("Issue", "a@x.com").Return("048213", nil)
	nf.On("Deliver", mock.Anything, "a@x.com", "048213").Return(errors.New("smtp down"))

	svc := NewService(ps, nf, nil)
	err := svc.RequestPin(context.Background(), "a@x.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDelivery))
	// No compensating call reaches the store: the issued code stays live
	// until its TTL even though delivery failed.
	ps.AssertExpectations(t)
	ps.AssertNumberOfCalls(t, "Issue", 1)
}

// --- VerifyPin ---

func TestVerifyPin_Success_MintsToken(t *testing.T) {
	ps := &mockPinStore{}
	sg := &mockSigner{}
	ps.On("Verify", "a@x.com", "048213").Return(pinstore.OutcomeSuccess)
	sg.On("Sign", "a@x.com").Return("signed-token", nil)

	svc := NewService(ps, &mockNotifier{}, sg)
	token, err := svc.VerifyPin(context.Background(), "a@x.com", "048213")

	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	ps.AssertExpectations(t)
	sg.AssertExpectations(t)
}

func TestVerifyPin_AllFailureOutcomes_CollapseToUnauthorized(t *testing.T) {
	for _, outcome := range []pinstore.Outcome{
		pinstore.OutcomeNotFound,
		pinstore.OutcomeExpired,
		pinstore.OutcomeExhausted,
		pinstore.OutcomeMismatch,
	} {
		ps := &mockPinStore{}
		sg := &mockSigner{}
		ps.On("Verify", "a@x.com", "000000").Return(outcome)

		svc := NewService(ps, &mockNotifier{}, sg)
		token, err := svc.VerifyPin(context.Background(), "a@x.com", "000000")

		require.Error(t, err, "outcome %s", outcome)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized), "outcome %s", outcome)
		assert.Empty(t, token)
		// No token is minted on any failed outcome.
		sg.AssertNotCalled(t, "Sign", mock.Anything)
	}
}

func TestVerifyPin_SignerFailure_Propagates(t *testing.T) {
	ps := &mockPinStore{}
	sg := &mockSigner{}
	ps.On("Verify", "a@x.com", "048213").Return(pinstore.OutcomeSuccess)
	sg.On("Sign", "a@x.com").Return("", errors.New("boom"))

	svc := NewService(ps, &mockNotifier{}, sg)
	_, err := svc.VerifyPin(context.Background(), "a@x.com", "048213")

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestVerifyPin_NormalizesIdentity(t *testing.T) {
	ps := &mockPinStore{}
	sg := &mockSigner{}
	ps.On("Verify", "a@x.com", "048213").Return(pinstore.OutcomeSuccess)
	sg.On("Sign", "a@x.com").Return("signed-token", nil)

	svc := NewService(ps, &mockNotifier{}, sg)
	token, err := svc.VerifyPin(context.Background(), "A@X.COM", "048213")

	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
}
