package repository

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain/asset"
	"github.com/x-xyz/marketplace/service/store/sqldb"
)

func newSqliteRepo(t *testing.T) asset.LedgerRepo {
	db, err := sqldb.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	require.NoError(t, MigrateSqlite(db))
	t.Cleanup(func() { db.Close() })
	return NewSqlite(db)
}

func TestSqliteRegistriesAndBalances(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	repo := newSqliteRepo(t)

	_, err := repo.FindRegistry(c, registry)
	req.ErrorIs(err, asset.ErrUnknownRegistry)

	req.NoError(repo.UpsertRegistry(c, asset.Registry{Address: registry, Kind: asset.KindFungible, Symbol: "TST"}))
	req.NoError(repo.UpsertRegistry(c, asset.Registry{Address: registry, Kind: asset.KindFungible, Symbol: "TST2"}))
	all, err := repo.FindRegistries(c)
	req.NoError(err)
	req.Len(all, 1)
	req.Equal("TST2", all[0].Symbol)
	req.Equal(registry.ToLower(), all[0].Address)

	b, err := repo.Balance(c, registry, alice)
	req.NoError(err)
	req.True(b.IsZero())

	req.NoError(repo.SetBalance(c, registry, alice, decimal.NewFromInt(5)))
	req.NoError(repo.SetBalance(c, registry.ToLower(), alice.ToLower(), decimal.NewFromInt(7)))
	b, err = repo.Balance(c, registry, alice)
	req.NoError(err)
	req.True(b.Equal(decimal.NewFromInt(7)))

	req.NoError(repo.SetAllowance(c, registry, alice, bob, decimal.RequireFromString("1.5")))
	a, err := repo.Allowance(c, registry, alice, bob)
	req.NoError(err)
	req.True(a.Equal(decimal.RequireFromString("1.5")))
	a, err = repo.Allowance(c, registry, bob, alice)
	req.NoError(err)
	req.True(a.IsZero())
}

func TestSqliteOwnerAndGrants(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	repo := newSqliteRepo(t)

	_, err := repo.OwnerOf(c, registry, "1")
	req.ErrorIs(err, asset.ErrAssetNotFound)

	req.NoError(repo.SetOwner(c, registry, "1", alice))
	req.NoError(repo.SetOwner(c, registry, "1", bob))
	owner, err := repo.OwnerOf(c, registry, "1")
	req.NoError(err)
	req.True(owner.Equals(bob))

	single := asset.NonFungibleGrant{Owner: alice, Operator: bob, TokenId: "1"}
	forAll := asset.NonFungibleGrant{Owner: alice, Operator: bob}

	req.NoError(repo.SetGrant(c, registry, single, true))
	ok, err := repo.HasGrant(c, registry, forAll)
	req.NoError(err)
	req.False(ok)

	req.NoError(repo.SetGrant(c, registry, forAll, true))
	req.NoError(repo.SetGrant(c, registry, forAll, true))
	ok, err = repo.HasGrant(c, registry, forAll)
	req.NoError(err)
	req.True(ok)

	req.NoError(repo.SetGrant(c, registry, forAll, false))
	ok, err = repo.HasGrant(c, registry, forAll)
	req.NoError(err)
	req.False(ok)
	ok, err = repo.HasGrant(c, registry, single)
	req.NoError(err)
	req.True(ok)
}
