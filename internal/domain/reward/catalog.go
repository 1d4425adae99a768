package reward

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/lottery-rewards/internal/domain/account"
)

const (
	ItemFreeTicket   = "free-ticket"
	ItemModifyNumber = "modify-number"
	ItemExtraSpin    = "extra-spin"
	ItemVIPStatus    = "vip-status"
	ItemJackpotBoost = "jackpot-boost"
)

// Item is a redeemable catalog entry. MinBalance is the points balance
// required for the item to be offered at all; zero means always offered.
type Item struct {
	ID         string
	Cost       int64
	MinBalance int64
}

func (i Item) Available(pointsBalance int64) bool {
	return pointsBalance >= i.MinBalance
}

type Catalog struct {
	Items []Item
}

func DefaultCatalog() Catalog {
	return Catalog{
		Items: []Item{
			{ID: ItemFreeTicket, Cost: 500},
			{ID: ItemModifyNumber, Cost: 100},
			{ID: ItemExtraSpin, Cost: 200},
			{ID: ItemVIPStatus, Cost: 2000, MinBalance: 2000},
			{ID: ItemJackpotBoost, Cost: 300},
		},
	}
}

func (c Catalog) Lookup(itemID string) (Item, bool) {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return Item{}, false
}

// Redeem checks an item against the points balance and claim history and,
// on success, marks it claimed. The returned cost still has to be
// deducted through the ledger.
func (c Catalog) Redeem(itemID string, pointsBalance int64, claims Claims, now time.Time) (Item, error) {
	item, ok := c.Lookup(itemID)
	if !ok {
		return Item{}, errors.Wrapf(ErrUnknownItem, "item=%s", itemID)
	}
	if claims.Has(itemID) {
		return Item{}, errors.Wrapf(ErrAlreadyClaimed, "item=%s", itemID)
	}
	if !item.Available(pointsBalance) {
		return Item{}, errors.Wrapf(ErrUnavailable, "item=%s requires balance=%d", itemID, item.MinBalance)
	}
	if claims == nil {
		return Item{}, errors.New("claims must not be nil")
	}
	if pointsBalance < item.Cost {
		return Item{}, errors.Wrapf(account.ErrInsufficientPoints, "item=%s cost=%d balance=%d", itemID, item.Cost, pointsBalance)
	}

	claims.Mark(itemID, now)
	return item, nil
}
