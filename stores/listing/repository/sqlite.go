package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/service/store/sqldb"
)

type listingRow struct {
	ListingId           int64          `gorm:"primaryKey;autoIncrement:false"`
	NonFungibleRegistry domain.Address `gorm:"index"`
	AssetId             domain.TokenId
	Price               string
	Seller              domain.Address
	FungibleRegistry    domain.Address
	Listed              bool `gorm:"index"`
	Status              listing.Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (listingRow) TableName() string { return string(domain.TableListings) }

type counterRow struct {
	Name string `gorm:"primaryKey"`
	Next int64
}

func (counterRow) TableName() string { return string(domain.TableListingCounters) }

type activityRow struct {
	Seq              int64  `gorm:"primaryKey;autoIncrement"`
	ActivityId       string `gorm:"uniqueIndex"`
	ListingId        int64  `gorm:"index"`
	Type             listing.ActivityType
	Account          domain.Address
	Counterparty     domain.Address
	Price            string
	FungibleRegistry domain.Address
	Time             time.Time
}

func (activityRow) TableName() string { return string(domain.TableListingActivities) }

// MigrateSqlite creates the listing tables.
func MigrateSqlite(db *sqldb.DB) error {
	return db.Migrate(&listingRow{}, &counterRow{}, &activityRow{})
}

func (r listingRow) toListing() (listing.Listing, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return listing.Listing{}, err
	}
	return listing.Listing{
		NonFungibleRegistry: r.NonFungibleRegistry,
		AssetId:             r.AssetId,
		Price:               price,
		Seller:              r.Seller,
		FungibleRegistry:    r.FungibleRegistry,
		Listed:              r.Listed,
		Status:              r.Status,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}, nil
}

type sqliteImpl struct {
	db *sqldb.DB
}

func NewSqlite(db *sqldb.DB) listing.Repo {
	return &sqliteImpl{db}
}

func (im *sqliteImpl) NextId(c ctx.Ctx) (uint64, error) {
	row := counterRow{}
	if err := im.db.Conn(c).First(&row, "name = ?", listingCounterKey).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	} else if err != nil {
		c.WithField("err", err).Error("db.First failed")
		return 0, err
	}
	return uint64(row.Next), nil
}

func (im *sqliteImpl) Insert(c ctx.Ctx, id listing.ListingId, l listing.Listing) error {
	return im.db.RunWithTransaction(c, func(c ctx.Ctx) error {
		var n int64
		if err := im.db.Conn(c).Model(&listingRow{}).Where("listing_id = ?", int64(id)).Count(&n).Error; err != nil {
			c.WithField("err", err).Error("db.Count failed")
			return err
		} else if n > 0 {
			return domain.ErrConflict
		}

		row := listingRow{
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
		if err := im.db.Conn(c).Create(&row).Error; err != nil {
			c.WithField("err", err).Error("db.Create failed")
			return err
		}

		next, err := im.NextId(c)
		if err != nil {
			return err
		}
		if uint64(id)+1 <= next {
			return nil
		}
		if err := im.db.Upsert(c, &counterRow{Name: listingCounterKey, Next: int64(id) + 1}); err != nil {
			c.WithField("err", err).Error("db.Upsert failed")
			return err
		}
		return nil
	})
}

func (im *sqliteImpl) FindOne(c ctx.Ctx, id listing.ListingId) (*listing.Listing, error) {
	row := listingRow{}
	if err := im.db.Conn(c).First(&row, "listing_id = ?", int64(id)).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("db.First failed")
		return nil, err
	}
	l, err := row.toListing()
	if err != nil {
		c.WithField("err", err).Error("toListing failed")
		return nil, err
	}
	return &l, nil
}

func (im *sqliteImpl) Update(c ctx.Ctx, id listing.ListingId, l listing.Listing) error {
	res := im.db.Conn(c).Model(&listingRow{}).Where("listing_id = ?", int64(id)).Updates(map[string]interface{}{
		"listed":     l.Listed,
		"status":     l.Status,
		"updated_at": l.UpdatedAt,
	})
	if res.Error != nil {
		c.WithField("err", res.Error).Error("db.Updates failed")
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (im *sqliteImpl) FindAll(c ctx.Ctx, onlyActive bool) ([]listing.Entry, error) {
	qry := im.db.Conn(c).Order("listing_id")
	if onlyActive {
		qry = qry.Where("listed = ?", true)
	}
	rows := []listingRow{}
	if err := qry.Find(&rows).Error; err != nil {
		c.WithField("err", err).Error("db.Find failed")
		return nil, err
	}
	res := make([]listing.Entry, 0, len(rows))
	for _, r := range rows {
		l, err := r.toListing()
		if err != nil {
			c.WithField("err", err).WithField("listingId", r.ListingId).Error("toListing failed")
			return nil, err
		}
		res = append(res, listing.Entry{Id: listing.ListingId(r.ListingId), Listing: l})
	}
	return res, nil
}

type sqliteActivityImpl struct {
	db *sqldb.DB
}

func NewSqliteActivity(db *sqldb.DB) listing.ActivityRepo {
	return &sqliteActivityImpl{db}
}

func (im *sqliteActivityImpl) Insert(c ctx.Ctx, a listing.Activity) error {
	row := activityRow{
		ActivityId:       a.Id,
		ListingId:        int64(a.ListingId),
		Type:             a.Type,
		Account:          a.Account.ToLower(),
		Counterparty:     a.Counterparty.ToLower(),
		Price:            a.Price.String(),
		FungibleRegistry: a.FungibleRegistry.ToLower(),
		Time:             a.Time,
	}
	if err := im.db.Conn(c).Create(&row).Error; err != nil {
		c.WithField("err", err).Error("db.Create failed")
		return err
	}
	return nil
}

func (im *sqliteActivityImpl) FindByListing(c ctx.Ctx, id listing.ListingId) ([]listing.Activity, error) {
	rows := []activityRow{}
	if err := im.db.Conn(c).Where("listing_id = ?", int64(id)).Order("seq").Find(&rows).Error; err != nil {
		c.WithField("err", err).Error("db.Find failed")
		return nil, err
	}
	res := make([]listing.Activity, 0, len(rows))
	for _, r := range rows {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			c.WithField("err", err).Error("decimal.NewFromString failed")
			return nil, err
		}
		res = append(res, listing.Activity{
			Id:               r.ActivityId,
			ListingId:        listing.ListingId(r.ListingId),
			Type:             r.Type,
			Account:          r.Account,
			Counterparty:     r.Counterparty,
			Price:            price,
			FungibleRegistry: r.FungibleRegistry,
			Time:             r.Time,
		})
	}
	return res, nil
}
