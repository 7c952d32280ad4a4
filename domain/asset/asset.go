//go:generate mockery --name "NonFungibleRegistry|FungibleRegistry|Directory" --output mocks

package asset

import (
	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

// NonFungibleRegistry is the capability set the marketplace needs from a
// registry of unique assets.
type NonFungibleRegistry interface {
	// OwnerOf returns an empty address when the asset has no owner.
	OwnerOf(c ctx.Ctx, id domain.TokenId) (domain.Address, error)
	Allowance(c ctx.Ctx, owner, operator domain.Address, id domain.TokenId) (bool, error)
	// TransferFrom moves id from `from` to `to` on behalf of operator.
	TransferFrom(c ctx.Ctx, operator, from, to domain.Address, id domain.TokenId, data []byte) error
}

// FungibleRegistry is the capability set the marketplace needs from a
// registry of interchangeable balances.
type FungibleRegistry interface {
	Allowance(c ctx.Ctx, owner, spender domain.Address) (decimal.Decimal, error)
	// TransferFrom moves amount from `from` to `to` on behalf of spender.
	TransferFrom(c ctx.Ctx, spender, from, to domain.Address, amount decimal.Decimal, data []byte) error
}

// Directory resolves registry addresses referenced by listings.
type Directory interface {
	NonFungible(c ctx.Ctx, registry domain.Address) (NonFungibleRegistry, error)
	Fungible(c ctx.Ctx, registry domain.Address) (FungibleRegistry, error)
}

type Kind string

const (
	KindFungible    Kind = "fungible"
	KindNonFungible Kind = "nonFungible"
)

type Registry struct {
	Address domain.Address `json:"address" bson:"address" mapstructure:"address" validate:"required,address"`
	Kind    Kind           `json:"kind" bson:"kind" mapstructure:"kind" validate:"oneof=fungible nonFungible"`
	Name    string         `json:"name" bson:"name" mapstructure:"name"`
	Symbol  string         `json:"symbol" bson:"symbol" mapstructure:"symbol"`
}

// NonFungibleGrant is a standing transfer permission. An empty TokenId grants
// every asset of the owner.
type NonFungibleGrant struct {
	Owner    domain.Address
	Operator domain.Address
	TokenId  domain.TokenId
}

// LedgerRepo stores the state of the sandbox registries.
type LedgerRepo interface {
	UpsertRegistry(c ctx.Ctx, r Registry) error
	FindRegistry(c ctx.Ctx, address domain.Address) (*Registry, error)
	FindRegistries(c ctx.Ctx) ([]Registry, error)

	Balance(c ctx.Ctx, registry, owner domain.Address) (decimal.Decimal, error)
	SetBalance(c ctx.Ctx, registry, owner domain.Address, amount decimal.Decimal) error
	Allowance(c ctx.Ctx, registry, owner, spender domain.Address) (decimal.Decimal, error)
	SetAllowance(c ctx.Ctx, registry, owner, spender domain.Address, amount decimal.Decimal) error

	// OwnerOf returns ErrAssetNotFound when the asset was never minted.
	OwnerOf(c ctx.Ctx, registry domain.Address, id domain.TokenId) (domain.Address, error)
	SetOwner(c ctx.Ctx, registry domain.Address, id domain.TokenId, owner domain.Address) error
	HasGrant(c ctx.Ctx, registry domain.Address, g NonFungibleGrant) (bool, error)
	SetGrant(c ctx.Ctx, registry domain.Address, g NonFungibleGrant, approved bool) error
}

// Ledger is the sandbox surface used by the demo endpoints.
type Ledger interface {
	Directory

	Registries(c ctx.Ctx) ([]Registry, error)
	UpsertRegistry(c ctx.Ctx, r Registry) error

	BalanceOf(c ctx.Ctx, registry, owner domain.Address) (decimal.Decimal, error)
	FungibleAllowance(c ctx.Ctx, registry, owner, spender domain.Address) (decimal.Decimal, error)
	ApproveFungible(c ctx.Ctx, registry, owner, spender domain.Address, amount decimal.Decimal) error
	MintFungible(c ctx.Ctx, registry, to domain.Address, amount decimal.Decimal) error

	OwnerOf(c ctx.Ctx, registry domain.Address, id domain.TokenId) (domain.Address, error)
	// ApproveNonFungible grants or revokes operator for id, or for every
	// asset of owner when id is empty.
	ApproveNonFungible(c ctx.Ctx, registry, owner, operator domain.Address, id domain.TokenId, approved bool) error
	MintNonFungible(c ctx.Ctx, registry, to domain.Address, id domain.TokenId) error
}
