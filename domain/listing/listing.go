package listing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

type ListingId uint32

// MaxIdLimit is the largest allocator bound; ids are always < the bound.
const MaxIdLimit = uint64(math.MaxUint32)

type Status string

const (
	StatusActive    Status = "active"
	StatusSold      Status = "sold"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsTerminal() bool {
	return s == StatusSold || s == StatusCancelled
}

type Listing struct {
	NonFungibleRegistry domain.Address  `json:"nonFungibleRegistry"`
	AssetId             domain.TokenId  `json:"assetId"`
	Price               decimal.Decimal `json:"price"`
	Seller              domain.Address  `json:"seller"`
	FungibleRegistry    domain.Address  `json:"fungibleRegistry"`

	// Listed stays true until the listing is sold or cancelled and never
	// flips back.
	Listed bool   `json:"listed"`
	Status Status `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Close moves an active listing to the given terminal status. It reports
// false when the listing was already closed, in which case nothing changes.
func (l *Listing) Close(status Status, at time.Time) bool {
	l.Listed = false
	if l.Status.IsTerminal() {
		return false
	}
	l.Status = status
	l.UpdatedAt = at
	return true
}

// ListingParams is what a seller submits; seller and status are filled in by
// the registry.
type ListingParams struct {
	NonFungibleRegistry domain.Address  `json:"nonFungibleRegistry" validate:"required,address"`
	AssetId             domain.TokenId  `json:"assetId" validate:"required"`
	Price               decimal.Decimal `json:"price" validate:"amount"`
	FungibleRegistry    domain.Address  `json:"fungibleRegistry" validate:"required,address"`
}

func (p ListingParams) Validate() error {
	if p.NonFungibleRegistry.IsEmpty() || p.FungibleRegistry.IsEmpty() || p.AssetId.IsEmpty() {
		return domain.ErrBadParamInput
	}
	if !domain.IsValidAmount(p.Price) {
		return domain.ErrBadParamInput
	}
	return nil
}

type Entry struct {
	Id      ListingId `json:"id"`
	Listing Listing   `json:"listing"`
}

type Repo interface {
	// NextId returns the allocator value: every stored id is below it.
	NextId(c ctx.Ctx) (uint64, error)
	// Insert stores l under id and moves the allocator to id+1.
	Insert(c ctx.Ctx, id ListingId, l Listing) error
	FindOne(c ctx.Ctx, id ListingId) (*Listing, error)
	Update(c ctx.Ctx, id ListingId, l Listing) error
	// FindAll returns every stored listing in ascending id order.
	FindAll(c ctx.Ctx, onlyActive bool) ([]Entry, error)
}

type Usecase interface {
	CreateListing(c ctx.Ctx, caller domain.Address, params ListingParams) (ListingId, error)
	Buy(c ctx.Ctx, caller domain.Address, id ListingId) error
	Cancel(c ctx.Ctx, caller domain.Address, id ListingId) error
	ListListings(c ctx.Ctx, onlyActive bool) ([]Entry, error)

	FindOne(c ctx.Ctx, id ListingId) (*Listing, error)
	Activities(c ctx.Ctx, id ListingId) ([]Activity, error)
	// MarketAddress is the marketplace's own identity.
	MarketAddress() domain.Address
	// Close stops accepting calls; calls already queued still run.
	Close()
}
