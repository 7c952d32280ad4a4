package repository

import (
	"errors"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/asset"
	"github.com/x-xyz/marketplace/service/query"
)

// amounts are stored as decimal strings, the driver has no codec for decimal.Decimal

type balanceDoc struct {
	Registry domain.Address `bson:"registry"`
	Owner    domain.Address `bson:"owner"`
	Amount   string         `bson:"amount"`
}

type allowanceDoc struct {
	Registry domain.Address `bson:"registry"`
	Owner    domain.Address `bson:"owner"`
	Spender  domain.Address `bson:"spender"`
	Amount   string         `bson:"amount"`
}

type ownerDoc struct {
	Registry domain.Address `bson:"registry"`
	TokenId  domain.TokenId `bson:"tokenId"`
	Owner    domain.Address `bson:"owner"`
}

type grantDoc struct {
	Registry domain.Address `bson:"registry"`
	Owner    domain.Address `bson:"owner"`
	Operator domain.Address `bson:"operator"`
	TokenId  domain.TokenId `bson:"tokenId"`
}

type mongoImpl struct {
	q query.Mongo
}

func NewMongo(q query.Mongo) asset.LedgerRepo {
	return &mongoImpl{q}
}

// EnsureIndexes creates the unique keys the ledger relies on.
func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	indexes := map[domain.Table][]string{
		domain.TableAssetRegistries:    {"address"},
		domain.TableFungibleBalances:   {"registry", "owner"},
		domain.TableFungibleAllowances: {"registry", "owner", "spender"},
		domain.TableNonFungibleOwners:  {"registry", "tokenId"},
		domain.TableNonFungibleGrants:  {"registry", "owner", "operator", "tokenId"},
	}
	for table, keys := range indexes {
		if err := q.EnsureIndexes(c, table, query.Index{Keys: keys, Unique: true}); err != nil {
			c.WithField("err", err).WithField("table", table).Error("q.EnsureIndexes failed")
			return err
		}
	}
	return nil
}

func (im *mongoImpl) UpsertRegistry(c ctx.Ctx, r asset.Registry) error {
	r.Address = r.Address.ToLower()
	if err := im.q.Upsert(c, domain.TableAssetRegistries, bson.M{"address": r.Address}, r); err != nil {
		c.WithField("err", err).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *mongoImpl) FindRegistry(c ctx.Ctx, address domain.Address) (*asset.Registry, error) {
	res := &asset.Registry{}
	if err := im.q.FindOne(c, domain.TableAssetRegistries, bson.M{"address": address.ToLower()}, res); errors.Is(err, query.ErrNotFound) {
		return nil, asset.ErrUnknownRegistry
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *mongoImpl) FindRegistries(c ctx.Ctx) ([]asset.Registry, error) {
	res := []asset.Registry{}
	if err := im.q.Find(c, domain.TableAssetRegistries, bson.M{}, &res, query.SortBy("address")); err != nil {
		c.WithField("err", err).Error("q.Find failed")
		return nil, err
	}
	return res, nil
}

func parseStored(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func (im *mongoImpl) Balance(c ctx.Ctx, registry, owner domain.Address) (decimal.Decimal, error) {
	doc := &balanceDoc{}
	sel := bson.M{"registry": registry.ToLower(), "owner": owner.ToLower()}
	if err := im.q.FindOne(c, domain.TableFungibleBalances, sel, doc); errors.Is(err, query.ErrNotFound) {
		return decimal.Zero, nil
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return decimal.Zero, err
	}
	return parseStored(doc.Amount)
}

func (im *mongoImpl) SetBalance(c ctx.Ctx, registry, owner domain.Address, amount decimal.Decimal) error {
	doc := balanceDoc{registry.ToLower(), owner.ToLower(), amount.String()}
	sel := bson.M{"registry": doc.Registry, "owner": doc.Owner}
	if err := im.q.Upsert(c, domain.TableFungibleBalances, sel, doc); err != nil {
		c.WithField("err", err).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *mongoImpl) Allowance(c ctx.Ctx, registry, owner, spender domain.Address) (decimal.Decimal, error) {
	doc := &allowanceDoc{}
	sel := bson.M{"registry": registry.ToLower(), "owner": owner.ToLower(), "spender": spender.ToLower()}
	if err := im.q.FindOne(c, domain.TableFungibleAllowances, sel, doc); errors.Is(err, query.ErrNotFound) {
		return decimal.Zero, nil
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return decimal.Zero, err
	}
	return parseStored(doc.Amount)
}

func (im *mongoImpl) SetAllowance(c ctx.Ctx, registry, owner, spender domain.Address, amount decimal.Decimal) error {
	doc := allowanceDoc{registry.ToLower(), owner.ToLower(), spender.ToLower(), amount.String()}
	sel := bson.M{"registry": doc.Registry, "owner": doc.Owner, "spender": doc.Spender}
	if err := im.q.Upsert(c, domain.TableFungibleAllowances, sel, doc); err != nil {
		c.WithField("err", err).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *mongoImpl) OwnerOf(c ctx.Ctx, registry domain.Address, id domain.TokenId) (domain.Address, error) {
	doc := &ownerDoc{}
	sel := bson.M{"registry": registry.ToLower(), "tokenId": id}
	if err := im.q.FindOne(c, domain.TableNonFungibleOwners, sel, doc); errors.Is(err, query.ErrNotFound) {
		return "", asset.ErrAssetNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return "", err
	}
	return doc.Owner, nil
}

func (im *mongoImpl) SetOwner(c ctx.Ctx, registry domain.Address, id domain.TokenId, owner domain.Address) error {
	doc := ownerDoc{registry.ToLower(), id, owner.ToLower()}
	sel := bson.M{"registry": doc.Registry, "tokenId": id}
	if err := im.q.Upsert(c, domain.TableNonFungibleOwners, sel, doc); err != nil {
		c.WithField("err", err).Error("q.Upsert failed")
		return err
	}
	return nil
}

func toGrantDoc(registry domain.Address, g asset.NonFungibleGrant) grantDoc {
	return grantDoc{registry.ToLower(), g.Owner.ToLower(), g.Operator.ToLower(), g.TokenId}
}

func (d grantDoc) selector() bson.M {
	return bson.M{"registry": d.Registry, "owner": d.Owner, "operator": d.Operator, "tokenId": d.TokenId}
}

func (im *mongoImpl) HasGrant(c ctx.Ctx, registry domain.Address, g asset.NonFungibleGrant) (bool, error) {
	n, err := im.q.Count(c, domain.TableNonFungibleGrants, toGrantDoc(registry, g).selector())
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return false, err
	}
	return n > 0, nil
}

func (im *mongoImpl) SetGrant(c ctx.Ctx, registry domain.Address, g asset.NonFungibleGrant, approved bool) error {
	doc := toGrantDoc(registry, g)
	if approved {
		if err := im.q.Upsert(c, domain.TableNonFungibleGrants, doc.selector(), doc); err != nil {
			c.WithField("err", err).Error("q.Upsert failed")
			return err
		}
		return nil
	}
	if err := im.q.Remove(c, domain.TableNonFungibleGrants, doc.selector()); err != nil && !errors.Is(err, query.ErrNotFound) {
		c.WithField("err", err).Error("q.Remove failed")
		return err
	}
	return nil
}
