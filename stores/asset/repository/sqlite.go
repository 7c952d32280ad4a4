package repository

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/asset"
	"github.com/x-xyz/marketplace/service/store/sqldb"
)

type registryRow struct {
	Address domain.Address `gorm:"primaryKey"`
	Kind    asset.Kind
	Name    string
	Symbol  string
}

func (registryRow) TableName() string { return string(domain.TableAssetRegistries) }

type balanceRow struct {
	Registry domain.Address `gorm:"primaryKey"`
	Owner    domain.Address `gorm:"primaryKey"`
	Amount   string
}

func (balanceRow) TableName() string { return string(domain.TableFungibleBalances) }

type allowanceRow struct {
	Registry domain.Address `gorm:"primaryKey"`
	Owner    domain.Address `gorm:"primaryKey"`
	Spender  domain.Address `gorm:"primaryKey"`
	Amount   string
}

func (allowanceRow) TableName() string { return string(domain.TableFungibleAllowances) }

type ownerRow struct {
	Registry domain.Address `gorm:"primaryKey"`
	TokenId  domain.TokenId `gorm:"primaryKey"`
	Owner    domain.Address
}

func (ownerRow) TableName() string { return string(domain.TableNonFungibleOwners) }

type grantRow struct {
	Registry domain.Address `gorm:"primaryKey"`
	Owner    domain.Address `gorm:"primaryKey"`
	Operator domain.Address `gorm:"primaryKey"`
	TokenId  domain.TokenId `gorm:"primaryKey"`
}

func (grantRow) TableName() string { return string(domain.TableNonFungibleGrants) }

// MigrateSqlite creates the ledger tables.
func MigrateSqlite(db *sqldb.DB) error {
	return db.Migrate(&registryRow{}, &balanceRow{}, &allowanceRow{}, &ownerRow{}, &grantRow{})
}

type sqliteImpl struct {
	db *sqldb.DB
}

func NewSqlite(db *sqldb.DB) asset.LedgerRepo {
	return &sqliteImpl{db}
}

func (im *sqliteImpl) UpsertRegistry(c ctx.Ctx, r asset.Registry) error {
	row := registryRow{Address: r.Address.ToLower(), Kind: r.Kind, Name: r.Name, Symbol: r.Symbol}
	if err := im.db.Upsert(c, &row); err != nil {
		c.WithField("err", err).Error("db.Upsert failed")
		return err
	}
	return nil
}

func (r registryRow) toRegistry() asset.Registry {
	return asset.Registry{Address: r.Address, Kind: r.Kind, Name: r.Name, Symbol: r.Symbol}
}

func (im *sqliteImpl) FindRegistry(c ctx.Ctx, address domain.Address) (*asset.Registry, error) {
	row := registryRow{}
	if err := im.db.Conn(c).First(&row, "address = ?", address.ToLower()).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, asset.ErrUnknownRegistry
	} else if err != nil {
		c.WithField("err", err).Error("db.First failed")
		return nil, err
	}
	r := row.toRegistry()
	return &r, nil
}

func (im *sqliteImpl) FindRegistries(c ctx.Ctx) ([]asset.Registry, error) {
	rows := []registryRow{}
	if err := im.db.Conn(c).Order("address").Find(&rows).Error; err != nil {
		c.WithField("err", err).Error("db.Find failed")
		return nil, err
	}
	res := make([]asset.Registry, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.toRegistry())
	}
	return res, nil
}

func (im *sqliteImpl) Balance(c ctx.Ctx, registry, owner domain.Address) (decimal.Decimal, error) {
	row := balanceRow{}
	err := im.db.Conn(c).First(&row, "registry = ? AND owner = ?", registry.ToLower(), owner.ToLower()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	} else if err != nil {
		c.WithField("err", err).Error("db.First failed")
		return decimal.Zero, err
	}
	return parseStored(row.Amount)
}

func (im *sqliteImpl) SetBalance(c ctx.Ctx, registry, owner domain.Address, amount decimal.Decimal) error {
	row := balanceRow{registry.ToLower(), owner.ToLower(), amount.String()}
	if err := im.db.Upsert(c, &row); err != nil {
		c.WithField("err", err).Error("db.Upsert failed")
		return err
	}
	return nil
}

func (im *sqliteImpl) Allowance(c ctx.Ctx, registry, owner, spender domain.Address) (decimal.Decimal, error) {
	row := allowanceRow{}
	err := im.db.Conn(c).First(&row, "registry = ? AND owner = ? AND spender = ?", registry.ToLower(), owner.ToLower(), spender.ToLower()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	} else if err != nil {
		c.WithField("err", err).Error("db.First failed")
		return decimal.Zero, err
	}
	return parseStored(row.Amount)
}

func (im *sqliteImpl) SetAllowance(c ctx.Ctx, registry, owner, spender domain.Address, amount decimal.Decimal) error {
	row := allowanceRow{registry.ToLower(), owner.ToLower(), spender.ToLower(), amount.String()}
	if err := im.db.Upsert(c, &row); err != nil {
		c.WithField("err", err).Error("db.Upsert failed")
		return err
	}
	return nil
}

func (im *sqliteImpl) OwnerOf(c ctx.Ctx, registry domain.Address, id domain.TokenId) (domain.Address, error) {
	row := ownerRow{}
	if err := im.db.Conn(c).First(&row, "registry = ? AND token_id = ?", registry.ToLower(), id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return "", asset.ErrAssetNotFound
	} else if err != nil {
		c.WithField("err", err).Error("db.First failed")
		return "", err
	}
	return row.Owner, nil
}

func (im *sqliteImpl) SetOwner(c ctx.Ctx, registry domain.Address, id domain.TokenId, owner domain.Address) error {
	row := ownerRow{registry.ToLower(), id, owner.ToLower()}
	if err := im.db.Upsert(c, &row); err != nil {
		c.WithField("err", err).Error("db.Upsert failed")
		return err
	}
	return nil
}

func toGrantRow(registry domain.Address, g asset.NonFungibleGrant) grantRow {
	return grantRow{registry.ToLower(), g.Owner.ToLower(), g.Operator.ToLower(), g.TokenId}
}

// grantQuery spells out every key column, struct conditions would drop the
// empty token id of an operator-for-all grant.
func (im *sqliteImpl) grantQuery(c ctx.Ctx, row grantRow) *gorm.DB {
	return im.db.Conn(c).Model(&grantRow{}).
		Where("registry = ? AND owner = ? AND operator = ? AND token_id = ?", row.Registry, row.Owner, row.Operator, row.TokenId)
}

func (im *sqliteImpl) HasGrant(c ctx.Ctx, registry domain.Address, g asset.NonFungibleGrant) (bool, error) {
	var n int64
	if err := im.grantQuery(c, toGrantRow(registry, g)).Count(&n).Error; err != nil {
		c.WithField("err", err).Error("db.Count failed")
		return false, err
	}
	return n > 0, nil
}

func (im *sqliteImpl) SetGrant(c ctx.Ctx, registry domain.Address, g asset.NonFungibleGrant, approved bool) error {
	row := toGrantRow(registry, g)
	if approved {
		if err := im.db.Upsert(c, &row); err != nil {
			c.WithField("err", err).Error("db.Upsert failed")
			return err
		}
		return nil
	}
	if err := im.grantQuery(c, row).Delete(&grantRow{}).Error; err != nil {
		c.WithField("err", err).Error("db.Delete failed")
		return err
	}
	return nil
}
