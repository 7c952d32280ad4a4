package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/asset"
)

const (
	registry = domain.Address("0xE7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	alice    = domain.Address("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	bob      = domain.Address("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func TestMemoryAddressesAreCaseInsensitive(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	repo := NewMemory()

	req.NoError(repo.UpsertRegistry(c, asset.Registry{Address: registry, Kind: asset.KindFungible}))
	r, err := repo.FindRegistry(c, registry.ToLower())
	req.NoError(err)
	req.Equal(registry.ToLower(), r.Address)

	req.NoError(repo.SetBalance(c, registry, alice, decimal.NewFromInt(5)))
	b, err := repo.Balance(c, registry.ToLower(), alice.ToLower())
	req.NoError(err)
	req.True(b.Equal(decimal.NewFromInt(5)))

	_, err = repo.FindRegistry(c, bob)
	req.ErrorIs(err, asset.ErrUnknownRegistry)
}

func TestMemoryOwnerAndGrants(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	repo := NewMemory()

	_, err := repo.OwnerOf(c, registry, "1")
	req.ErrorIs(err, asset.ErrAssetNotFound)

	req.NoError(repo.SetOwner(c, registry, "1", alice))
	owner, err := repo.OwnerOf(c, registry, "1")
	req.NoError(err)
	req.True(owner.Equals(alice))

	g := asset.NonFungibleGrant{Owner: alice, Operator: bob, TokenId: "1"}
	req.NoError(repo.SetGrant(c, registry, g, true))
	ok, err := repo.HasGrant(c, registry, g)
	req.NoError(err)
	req.True(ok)

	req.NoError(repo.SetGrant(c, registry, g, false))
	ok, err = repo.HasGrant(c, registry, g)
	req.NoError(err)
	req.False(ok)
}

func TestMemorySnapshotRestore(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	repo := NewMemory()

	req.NoError(repo.SetBalance(c, registry, alice, decimal.NewFromInt(10)))
	restore := repo.Snapshot()

	req.NoError(repo.SetBalance(c, registry, alice, decimal.NewFromInt(3)))
	req.NoError(repo.SetOwner(c, registry, "7", bob))
	restore()

	b, err := repo.Balance(c, registry, alice)
	req.NoError(err)
	req.True(b.Equal(decimal.NewFromInt(10)))
	_, err = repo.OwnerOf(c, registry, "7")
	req.ErrorIs(err, asset.ErrAssetNotFound)
}
