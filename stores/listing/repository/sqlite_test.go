package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/service/store/sqldb"
)

type SqliteRepoTestSuite struct {
	suite.Suite

	ctx        ctx.Ctx
	db         *sqldb.DB
	im         listing.Repo
	activities listing.ActivityRepo
}

func (s *SqliteRepoTestSuite) SetupTest() {
	s.ctx = ctx.Background()
	db, err := sqldb.Open(filepath.Join(s.T().TempDir(), "listings.db"))
	s.Require().NoError(err)
	s.Require().NoError(MigrateSqlite(db))
	s.db = db
	s.im = NewSqlite(db)
	s.activities = NewSqliteActivity(db)
}

func (s *SqliteRepoTestSuite) TearDownTest() {
	s.NoError(s.db.Close())
}

func (s *SqliteRepoTestSuite) TestInsertMovesAllocator() {
	next, err := s.im.NextId(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(0), next)

	s.Require().NoError(s.im.Insert(s.ctx, 0, mockListing))
	s.Require().NoError(s.im.Insert(s.ctx, 1, mockListing))
	s.ErrorIs(s.im.Insert(s.ctx, 1, mockListing), domain.ErrConflict)

	next, err = s.im.NextId(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(2), next)
}

func (s *SqliteRepoTestSuite) TestFindOne() {
	s.Require().NoError(s.im.Insert(s.ctx, 0, mockListing))
	l, err := s.im.FindOne(s.ctx, 0)
	s.Require().NoError(err)
	s.True(l.Price.Equal(decimal.NewFromInt(100)))
	s.Equal(seller, l.Seller)
	s.Equal(listing.StatusActive, l.Status)
	s.True(l.Listed)

	_, err = s.im.FindOne(s.ctx, 9)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *SqliteRepoTestSuite) TestUpdateAndFindAll() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.im.Insert(s.ctx, listing.ListingId(i), mockListing))
	}
	closed := mockListing
	closed.Close(listing.StatusCancelled, time.Now())
	s.Require().NoError(s.im.Update(s.ctx, 1, closed))
	s.ErrorIs(s.im.Update(s.ctx, 7, closed), domain.ErrNotFound)

	l, err := s.im.FindOne(s.ctx, 1)
	s.Require().NoError(err)
	s.False(l.Listed)
	s.Equal(listing.StatusCancelled, l.Status)

	all, err := s.im.FindAll(s.ctx, false)
	s.Require().NoError(err)
	s.Len(all, 3)
	for i, e := range all {
		s.Equal(listing.ListingId(i), e.Id)
	}

	active, err := s.im.FindAll(s.ctx, true)
	s.Require().NoError(err)
	s.Len(active, 2)
	s.Equal(listing.ListingId(0), active[0].Id)
	s.Equal(listing.ListingId(2), active[1].Id)
}

func (s *SqliteRepoTestSuite) TestRollbackRestoresAllocator() {
	s.Require().NoError(s.im.Insert(s.ctx, 0, mockListing))
	err := s.db.RunWithTransaction(s.ctx, func(c ctx.Ctx) error {
		if err := s.im.Insert(c, 1, mockListing); err != nil {
			return err
		}
		return domain.ErrInternalServerError
	})
	s.ErrorIs(err, domain.ErrInternalServerError)

	next, err := s.im.NextId(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), next)
	_, err = s.im.FindOne(s.ctx, 1)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *SqliteRepoTestSuite) TestActivities() {
	s.Require().NoError(s.activities.Insert(s.ctx, listing.Activity{Id: "a", ListingId: 0, Type: listing.ActivityTypeList, Price: decimal.NewFromInt(5)}))
	s.Require().NoError(s.activities.Insert(s.ctx, listing.Activity{Id: "b", ListingId: 1, Type: listing.ActivityTypeList, Price: decimal.NewFromInt(6)}))
	s.Require().NoError(s.activities.Insert(s.ctx, listing.Activity{Id: "c", ListingId: 0, Type: listing.ActivityTypeSold, Price: decimal.NewFromInt(5)}))

	res, err := s.activities.FindByListing(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(res, 2)
	s.Equal("a", res[0].Id)
	s.Equal(listing.ActivityTypeSold, res[1].Type)
	s.True(res[1].Price.Equal(decimal.NewFromInt(5)))
}

func TestSqliteRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SqliteRepoTestSuite))
}
