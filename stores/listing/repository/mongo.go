package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/service/query"
)

const listingCounterKey = "listing"

type listingDoc struct {
	ListingId           int64          `bson:"listingId"`
	NonFungibleRegistry domain.Address `bson:"nonFungibleRegistry"`
	AssetId             domain.TokenId `bson:"assetId"`
	Price               string         `bson:"price"`
	Seller              domain.Address `bson:"seller"`
	FungibleRegistry    domain.Address `bson:"fungibleRegistry"`
	Listed              bool           `bson:"listed"`
	Status              listing.Status `bson:"status"`
	CreatedAt           time.Time      `bson:"createdAt"`
	UpdatedAt           time.Time      `bson:"updatedAt"`
}

func toListingDoc(id listing.ListingId, l listing.Listing) listingDoc {
	return listingDoc{
		ListingId:           int64(id),
		NonFungibleRegistry: l.NonFungibleRegistry.ToLower(),
		AssetId:             l.AssetId,
		Price:               l.Price.String(),
		Seller:              l.Seller.ToLower(),
		FungibleRegistry:    l.FungibleRegistry.ToLower(),
		Listed:              l.Listed,
		Status:              l.Status,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

func (d listingDoc) toEntry() (listing.Entry, error) {
	price, err := decimal.NewFromString(d.Price)
	if err != nil {
		return listing.Entry{}, err
	}
	return listing.Entry{
		Id: listing.ListingId(d.ListingId),
		Listing: listing.Listing{
			NonFungibleRegistry: d.NonFungibleRegistry,
			AssetId:             d.AssetId,
			Price:               price,
			Seller:              d.Seller,
			FungibleRegistry:    d.FungibleRegistry,
			Listed:              d.Listed,
			Status:              d.Status,
			CreatedAt:           d.CreatedAt,
			UpdatedAt:           d.UpdatedAt,
		},
	}, nil
}

type counterDoc struct {
	Key  string `bson:"_id"`
	Next int64  `bson:"next"`
}

type mongoImpl struct {
	q query.Mongo
}

func NewMongo(q query.Mongo) listing.Repo {
	return &mongoImpl{q}
}

// EnsureIndexes creates the indexes the listing repositories query by.
func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	if err := q.EnsureIndexes(c, domain.TableListings,
		query.Index{Keys: []string{"listingId"}, Unique: true},
		query.Index{Keys: []string{"listed", "listingId"}},
	); err != nil {
		c.WithField("err", err).Error("q.EnsureIndexes failed")
		return err
	}
	if err := q.EnsureIndexes(c, domain.TableListingActivities,
		query.Index{Keys: []string{"activityId"}, Unique: true},
		query.Index{Keys: []string{"listingId", "seq"}, Unique: true},
	); err != nil {
		c.WithField("err", err).Error("q.EnsureIndexes failed")
		return err
	}
	return nil
}

func (im *mongoImpl) NextId(c ctx.Ctx) (uint64, error) {
	doc := &counterDoc{}
	if err := im.q.FindOne(c, domain.TableListingCounters, bson.M{"_id": listingCounterKey}, doc); errors.Is(err, query.ErrNotFound) {
		return 0, nil
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return 0, err
	}
	return uint64(doc.Next), nil
}

func (im *mongoImpl) Insert(c ctx.Ctx, id listing.ListingId, l listing.Listing) error {
	next, err := im.NextId(c)
	if err != nil {
		return err
	}

	if err := im.q.Insert(c, domain.TableListings, toListingDoc(id, l)); errors.Is(err, query.ErrDuplicateKey) {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}

	if uint64(id)+1 <= next {
		return nil
	}
	counter := counterDoc{Key: listingCounterKey, Next: int64(id) + 1}
	if err := im.q.Upsert(c, domain.TableListingCounters, bson.M{"_id": listingCounterKey}, counter); err != nil {
		c.WithField("err", err).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *mongoImpl) FindOne(c ctx.Ctx, id listing.ListingId) (*listing.Listing, error) {
	doc := &listingDoc{}
	if err := im.q.FindOne(c, domain.TableListings, bson.M{"listingId": int64(id)}, doc); errors.Is(err, query.ErrNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	e, err := doc.toEntry()
	if err != nil {
		c.WithField("err", err).Error("toEntry failed")
		return nil, err
	}
	return &e.Listing, nil
}

func (im *mongoImpl) Update(c ctx.Ctx, id listing.ListingId, l listing.Listing) error {
	// only these fields ever change after insert
	patch := bson.M{
		"listed":    l.Listed,
		"status":    l.Status,
		"updatedAt": l.UpdatedAt,
	}
	if err := im.q.Patch(c, domain.TableListings, bson.M{"listingId": int64(id)}, patch); errors.Is(err, query.ErrNotFound) {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *mongoImpl) FindAll(c ctx.Ctx, onlyActive bool) ([]listing.Entry, error) {
	qry := bson.M{}
	if onlyActive {
		qry["listed"] = true
	}
	docs := []listingDoc{}
	if err := im.q.Find(c, domain.TableListings, qry, &docs, query.SortBy("listingId")); err != nil {
		c.WithField("err", err).Error("q.Find failed")
		return nil, err
	}
	res := make([]listing.Entry, 0, len(docs))
	for _, d := range docs {
		e, err := d.toEntry()
		if err != nil {
			c.WithField("err", err).WithField("listingId", d.ListingId).Error("toEntry failed")
			return nil, err
		}
		res = append(res, e)
	}
	return res, nil
}

type activityDoc struct {
	ActivityId       string               `bson:"activityId"`
	ListingId        int64                `bson:"listingId"`
	Seq              int                  `bson:"seq"`
	Type             listing.ActivityType `bson:"type"`
	Account          domain.Address       `bson:"account"`
	Counterparty     domain.Address       `bson:"counterparty,omitempty"`
	Price            string               `bson:"price"`
	FungibleRegistry domain.Address       `bson:"fungibleRegistry"`
	Time             time.Time            `bson:"time"`
}

type activityImpl struct {
	q query.Mongo
}

func NewMongoActivity(q query.Mongo) listing.ActivityRepo {
	return &activityImpl{q}
}

// Insert numbers activities per listing, time alone does not order two
// writes landing in the same millisecond.
func (im *activityImpl) Insert(c ctx.Ctx, a listing.Activity) error {
	seq, err := im.q.Count(c, domain.TableListingActivities, bson.M{"listingId": int64(a.ListingId)})
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return err
	}
	doc := activityDoc{
		ActivityId:       a.Id,
		ListingId:        int64(a.ListingId),
		Seq:              seq,
		Type:             a.Type,
		Account:          a.Account.ToLower(),
		Counterparty:     a.Counterparty.ToLower(),
		Price:            a.Price.String(),
		FungibleRegistry: a.FungibleRegistry.ToLower(),
		Time:             a.Time,
	}
	if err := im.q.Insert(c, domain.TableListingActivities, doc); err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *activityImpl) FindByListing(c ctx.Ctx, id listing.ListingId) ([]listing.Activity, error) {
	docs := []activityDoc{}
	if err := im.q.Find(c, domain.TableListingActivities, bson.M{"listingId": int64(id)}, &docs, query.SortBy("seq")); err != nil {
		c.WithField("err", err).Error("q.Find failed")
		return nil, err
	}
	res := make([]listing.Activity, 0, len(docs))
	for _, d := range docs {
		price, err := decimal.NewFromString(d.Price)
		if err != nil {
			c.WithField("err", err).Error("decimal.NewFromString failed")
			return nil, err
		}
		res = append(res, listing.Activity{
			Id:               d.ActivityId,
			ListingId:        listing.ListingId(d.ListingId),
			Type:             d.Type,
			Account:          d.Account,
			Counterparty:     d.Counterparty,
			Price:            price,
			FungibleRegistry: d.FungibleRegistry,
			Time:             d.Time,
		})
	}
	return res, nil
}
