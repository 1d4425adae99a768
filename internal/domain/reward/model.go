package reward

import (
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrUnknownItem     = errors.New("unknown catalog item")
	ErrUnavailable     = errors.New("catalog item unavailable")
	ErrAlreadyClaimed  = errors.New("catalog item already claimed")
	ErrSpinUnavailable = errors.New("no spin available")
)

// Kind tags a wheel outcome.
type Kind string

const (
	KindPoints      Kind = "points"
	KindBonusPoints Kind = "bonus_points"
	KindFreeTicket  Kind = "free_ticket"
	KindBadge       Kind = "badge"
)

// Outcome is one wheel segment. Ref identifies badges.
type Outcome struct {
	Kind   Kind
	Amount int64
	Ref    string
}

// Claims records catalog items claimed by one account, keyed by item id.
// It shares its underlying type with account.Account.Claims.
type Claims map[string]time.Time

func (c Claims) Has(itemID string) bool {
	_, ok := c[itemID]
	return ok
}

func (c Claims) Mark(itemID string, at time.Time) {
	c[itemID] = at
}

// Rules holds reward settings outside the wheel and catalog tables.
type Rules struct {
	FreeTicketPoints  int64
	DailySpins        int
	VIPDuration       time.Duration
	ProgressThreshold int64
}

func DefaultRules() Rules {
	return Rules{
		FreeTicketPoints:  50,
		DailySpins:        1,
		VIPDuration:       7 * 24 * time.Hour,
		ProgressThreshold: 2000,
	}
}

// PointsFor returns the points an outcome is worth under r.
func (r Rules) PointsFor(o Outcome) int64 {
	switch o.Kind {
	case KindPoints, KindBonusPoints:
		return o.Amount
	case KindFreeTicket:
		return r.FreeTicketPoints
	default:
		return 0
	}
}
