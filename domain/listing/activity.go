package listing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

type ActivityType string

const (
	ActivityTypeList          ActivityType = "list"
	ActivityTypeSold          ActivityType = "sold"
	ActivityTypeCancelListing ActivityType = "cancelListing"
)

type Activity struct {
	Id               string          `json:"id"`
	ListingId        ListingId       `json:"listingId"`
	Type             ActivityType    `json:"type"`
	Account          domain.Address  `json:"account"`
	Counterparty     domain.Address  `json:"counterparty,omitempty"`
	Price            decimal.Decimal `json:"price"`
	FungibleRegistry domain.Address  `json:"fungibleRegistry"`
	Time             time.Time       `json:"time"`
}

type ActivityRepo interface {
	Insert(c ctx.Ctx, a Activity) error
	// FindByListing returns activities of a listing, oldest first.
	FindByListing(c ctx.Ctx, id ListingId) ([]Activity, error)
}
