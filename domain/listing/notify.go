package listing

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

// Sale describes a committed purchase.
type Sale struct {
	Id      ListingId
	Listing Listing
	Buyer   domain.Address
	Time    time.Time
}

// SaleNotifier is told about sales after they commit. It must not block the
// caller and its failures never reach the buyer.
type SaleNotifier interface {
	NotifySold(c ctx.Ctx, s Sale)
}
