package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, subject, body string
	err               error
	calls             int
}

func (f *fakeMailer) SendEmail(to, subject, body string) error {
	f.calls++
	f.to, f.subject, f.body = to, subject, body
	return f.err
}

type fakeSMS struct {
	to, message string
	err         error
	calls       int
}

func (f *fakeSMS) SendSMS(_ context.Context, to, message string) error {
	f.calls++
	f.to, f.message = to, message
	return f.err
}

func TestDeliver_EmailIdentityRoutesToMailer(t *testing.T) {
	mailer := &fakeMailer{}
	sms := &fakeSMS{}
	n := New(mailer, sms)

	require.NoError(t, n.Deliver(context.Background(), "a@x.com", "048213"))

	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, 0, sms.calls)
	assert.Equal(t, "a@x.com", mailer.to)
	assert.Contains(t, mailer.body, "048213")
}

func TestDeliver_PhoneIdentityRoutesToSMS(t *testing.T) {
	mailer := &fakeMailer{}
	sms := &fakeSMS{}
	n := New(mailer, sms)

	require.NoError(t, n.Deliver(context.Background(), "+15551234567", "048213"))

	assert.Equal(t, 0, mailer.calls)
	assert.Equal(t, 1, sms.calls)
	assert.Equal(t, "+15551234567", sms.to)
	assert.Contains(t, sms.message, "048213")
}

func TestDeliver_PhoneWithoutSMSConfigured(t *testing.T) {
	mailer := &fakeMailer{}
	n := New(mailer, nil)

	err := n.Deliver(context.Background(), "+15551234567", "048213")

	require.Error(t, err)
	assert.Equal(t, 0, mailer.calls)
}

func TestDeliver_PropagatesTransportError(t *testing.T) {
	sentinel := errors.New("smtp down")
	n := New(&fakeMailer{err: sentinel}, nil)

	err := n.Deliver(context.Background(), "a@x.com", "048213")
	assert.ErrorIs(t, err, sentinel)
}

func TestIsPhoneNumber(t *testing.T) {
	cases := []struct {
		identity string
		want     bool
	}{
		{"+15551234567", true},
		{"+4915112345678", true},
		{"a@x.com", false},
		{"15551234567", false},   // no leading +
		{"+1555", false},         // too short
		{"+1555123456a", false},  // non-digit
		{"+1555 123456", false},  // space
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isPhoneNumber(tc.identity), tc.identity)
	}
}
