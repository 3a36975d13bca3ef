package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/bestsenki/storefront/internal/domain/pricing"
	"golang.org/x/time/rate"
)

// BalanceState tracks whether the session's loyalty balance can be used
type BalanceState string

const (
	// BalanceStateUnknown is the state of guest sessions and of sessions
	// whose balance has not been fetched yet
	BalanceStateUnknown     BalanceState = "unknown"
	BalanceStateAvailable   BalanceState = "available"
	BalanceStateUnavailable BalanceState = "unavailable"
)

// Session is one in-progress checkout. All mutation goes through Lock so
// concurrent requests on the same session apply one at a time.
type Session struct {
	mu sync.Mutex

	ID        string
	AccountID string
	Resolver  *pricing.Resolver
	CreatedAt time.Time

	balance      int64
	balanceState BalanceState
	promoLimiter *rate.Limiter
	closed       bool
}

func NewSession(id, accountID string, resolver *pricing.Resolver, promoLimit rate.Limit, promoBurst int) *Session {
	return &Session{
		ID:           id,
		AccountID:    accountID,
		Resolver:     resolver,
		CreatedAt:    time.Now().UTC(),
		balanceState: BalanceStateUnknown,
		promoLimiter: rate.NewLimiter(promoLimit, promoBurst),
	}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Balance returns the cached balance and its state. Callers hold the lock.
func (s *Session) Balance() (int64, BalanceState) {
	return s.balance, s.balanceState
}

func (s *Session) SetBalance(points int64) {
	s.balance = points
	s.balanceState = BalanceStateAvailable
}

// DisablePoints marks the balance unavailable for the rest of the session
func (s *Session) DisablePoints() {
	s.balance = 0
	s.balanceState = BalanceStateUnavailable
}

func (s *Session) IsGuest() bool {
	return s.AccountID == ""
}

// AllowPromoAttempt consumes one promo attempt token
func (s *Session) AllowPromoAttempt() bool {
	return s.promoLimiter.Allow()
}

func (s *Session) Close()         { s.closed = true }
func (s *Session) IsClosed() bool { return s.closed }

// View is the client-facing snapshot of a session. Callers hold the lock.
type View struct {
	ID              string         `json:"id"`
	Lines           []pricing.Line `json:"lines"`
	Pricing         pricing.Result `json:"pricing"`
	AvailablePoints int64          `json:"available_points"`
	MaxUsablePoints int64          `json:"max_usable_points"`
	BalanceState    BalanceState   `json:"balance_state"`
}

func (s *Session) View() View {
	available := s.balance
	if s.balanceState != BalanceStateAvailable {
		available = 0
	}
	return View{
		ID:              s.ID,
		Lines:           s.Resolver.Lines(),
		Pricing:         s.Resolver.Finalize(),
		AvailablePoints: available,
		MaxUsablePoints: s.Resolver.MaxUsablePoints(available),
		BalanceState:    s.balanceState,
	}
}

// Store keeps live sessions. Sessions are shared pointers; the store never copies them.
type Store interface {
	Get(ctx context.Context, id string) (*Session, bool)
	Save(ctx context.Context, s *Session)
	Delete(ctx context.Context, id string)
}
