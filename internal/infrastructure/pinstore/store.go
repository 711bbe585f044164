// Package pinstore holds pending one-time login codes in process memory.
//
// Each identity has at most one live code. A code dies on its first terminal
// outcome: consumed by a correct submission, found expired during a check, or
// invalidated after too many wrong submissions. Issuing a new code for an
// identity replaces any live one, which makes the old code permanently
// unverifiable.
package pinstore

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const (
	// PinLength is the number of digits in a generated code.
	PinLength = 6

	// MaxAttempts is how many wrong submissions a code survives.
	MaxAttempts = 3
)

// Outcome is the result of a single Verify call. Exactly one outcome occurs
// per call. Callers collapse everything except OutcomeSuccess into a single
// invalid-credential answer; the distinct kinds exist for internal logging.
type Outcome int

const (
	// OutcomeSuccess: the code matched and has been consumed.
	OutcomeSuccess Outcome = iota
	// OutcomeNotFound: no live code for the identity. Deliberately covers
	// both "never issued" and "already consumed".
	OutcomeNotFound
	// OutcomeExpired: the code's TTL elapsed; the record has been removed.
	OutcomeExpired
	// OutcomeExhausted: too many wrong attempts; the record has been removed.
	OutcomeExhausted
	// OutcomeMismatch: wrong code; the attempt counter was incremented.
	OutcomeMismatch
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeExpired:
		return "expired"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

type pendingCode struct {
	code      string
	expiresAt time.Time
	attempts  int
}

// Store is an in-memory identity→pending-code map with TTL and an attempt
// ceiling. All operations take the store lock for their full duration, so
// issue-replaces, the ordered verify checks, attempt increments and
// delete-on-terminal are each a single critical section; two concurrent
// submissions of the same correct code cannot both succeed.
//
// State lives only in process memory. A multi-instance deployment would swap
// in a shared store behind the same interface the auth service consumes.
type Store struct {
	mu    sync.Mutex
	codes map[string]*pendingCode
	ttl   time.Duration
	now   func() time.Time
}

// New creates a Store whose codes live for ttl after issuance.
func New(ttl time.Duration) *Store {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock is New with an injectable clock, used by tests to pin time.
func NewWithClock(ttl time.Duration, now func() time.Time) *Store {
	return &Store{
		codes: make(map[string]*pendingCode),
		ttl:   ttl,
		now:   now,
	}
}

// Issue generates a fresh 6-digit code for identity and stores it with a
// zeroed attempt counter, unconditionally replacing any live code. The only
// error path is the system's randomness source failing.
func (s *Store) Issue(identity string) (string, error) {
	code, err := generatePin()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[identity] = &pendingCode{
		code:      code,
		expiresAt: s.now().Add(s.ttl),
	}
	return code, nil
}

// Verify checks submitted against the live code for identity and returns
// exactly one Outcome. Checks run in a fixed order: existence, expiry,
// attempt ceiling, match. Expiry dominates exhaustion so a record that is
// both reports OutcomeExpired. Terminal outcomes delete the record; a
// mismatch below the ceiling increments the counter and keeps it.
func (s *Store) Verify(identity, submitted string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.codes[identity]
	if !ok {
		return OutcomeNotFound
	}
	if !s.now().Before(rec.expiresAt) {
		delete(s.codes, identity)
		return OutcomeExpired
	}
	if rec.attempts >= MaxAttempts {
		delete(s.codes, identity)
		return OutcomeExhausted
	}
	if rec.code != submitted {
		rec.attempts++
		return OutcomeMismatch
	}
	delete(s.codes, identity)
	return OutcomeSuccess
}

// Purge removes every expired record. Verify already deletes expired records
// it touches; Purge only reclaims memory for codes nobody ever submitted.
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	now := s.now()
	for identity, rec := range s.codes {
		if !now.Before(rec.expiresAt) {
			delete(s.codes, identity)
			n++
		}
	}
	return n
}

// generatePin draws a uniform number in [0, 10^PinLength) from crypto/rand
// and zero-pads it. Full-width generation avoids the modulo bias a
// digit-by-digit scheme can pick up at range boundaries.
func generatePin() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < PinLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate pin: %w", err)
	}
	return fmt.Sprintf("%0*d", PinLength, n), nil
}
