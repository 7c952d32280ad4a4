package usecase

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/base/metrics"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/asset"
	"github.com/x-xyz/marketplace/domain/listing"
)

var met = metrics.New("listing")

type Config struct {
	// Market is the identity registries see as operator and spender.
	Market domain.Address
	// IdLimit bounds the id allocator, ids are always below it.
	IdLimit   uint64
	InboxSize int
}

type impl struct {
	cfg        Config
	repo       listing.Repo
	activities listing.ActivityRepo
	directory  asset.Directory
	notifier   listing.SaleNotifier
	seq        *sequencer

	timeNow func() time.Time
	newId   func() string
}

func New(
	cfg Config,
	repo listing.Repo,
	activities listing.ActivityRepo,
	directory asset.Directory,
	tx domain.Transactor,
	notifier listing.SaleNotifier,
) listing.Usecase {
	if cfg.IdLimit == 0 || cfg.IdLimit > listing.MaxIdLimit {
		cfg.IdLimit = listing.MaxIdLimit
	}
	if cfg.InboxSize < 0 {
		cfg.InboxSize = 0
	}
	return &impl{
		cfg:        cfg,
		repo:       repo,
		activities: activities,
		directory:  directory,
		notifier:   notifier,
		seq:        newSequencer(tx, cfg.InboxSize),
		timeNow:    time.Now,
		newId:      func() string { return uuid.New().String() },
	}
}

func (im *impl) MarketAddress() domain.Address {
	return im.cfg.Market
}

func (im *impl) Close() {
	im.seq.close()
}

func (im *impl) CreateListing(c ctx.Ctx, caller domain.Address, params listing.ListingParams) (listing.ListingId, error) {
	defer met.BumpTime("create.time").End()

	if err := params.Validate(); err != nil {
		return 0, err
	}
	if caller.IsEmpty() {
		return 0, domain.ErrBadParamInput
	}

	c = ctx.WithFields(c, log.Fields{"caller": caller, "asset": params.AssetId})

	var id listing.ListingId
	err := im.seq.do(c, "createListing", func(c ctx.Ctx) error {
		nft, err := im.directory.NonFungible(c, params.NonFungibleRegistry)
		if err != nil {
			return collaboratorErr("directory.NonFungible", err)
		}

		owner, err := nft.OwnerOf(c, params.AssetId)
		if err != nil {
			return collaboratorErr("OwnerOf", err)
		}
		if owner.IsEmpty() || !owner.Equals(caller) {
			return listing.ErrNotOwner
		}

		approved, err := nft.Allowance(c, caller, im.cfg.Market, params.AssetId)
		if err != nil {
			return collaboratorErr("Allowance", err)
		}
		if !approved {
			return listing.ErrNotApproved
		}

		next, err := im.repo.NextId(c)
		if err != nil {
			c.WithField("err", err).Error("repo.NextId failed")
			return err
		}
		if next >= im.cfg.IdLimit {
			return listing.ErrIdSpaceExhausted
		}

		now := im.timeNow()
		l := listing.Listing{
			NonFungibleRegistry: params.NonFungibleRegistry.ToLower(),
			AssetId:             params.AssetId,
			Price:               params.Price,
			Seller:              caller.ToLower(),
			FungibleRegistry:    params.FungibleRegistry.ToLower(),
			Listed:              true,
			Status:              listing.StatusActive,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := im.repo.Insert(c, listing.ListingId(next), l); err != nil {
			c.WithField("err", err).Error("repo.Insert failed")
			return err
		}
		id = listing.ListingId(next)

		return im.record(c, id, l, listing.ActivityTypeList, l.Seller, "", now)
	})
	if err != nil {
		im.logFailure(c, "createListing", err)
		return 0, err
	}

	met.BumpSum("created", 1)
	c.WithField("listingId", id).Info("listing created")
	return id, nil
}

func (im *impl) Buy(c ctx.Ctx, caller domain.Address, id listing.ListingId) error {
	defer met.BumpTime("buy.time").End()

	if caller.IsEmpty() {
		return domain.ErrBadParamInput
	}

	c = ctx.WithFields(c, log.Fields{"caller": caller, "listingId": id})

	var sale listing.Sale
	err := im.seq.do(c, "buy", func(c ctx.Ctx) error {
		l, err := im.findListing(c, id)
		if err != nil {
			return err
		}
		if !l.Listed {
			return xerrors.Errorf("listing %d is not active: %w", id, listing.ErrNoSuchListing)
		}

		ft, err := im.directory.Fungible(c, l.FungibleRegistry)
		if err != nil {
			return collaboratorErr("directory.Fungible", err)
		}
		allowance, err := ft.Allowance(c, caller, im.cfg.Market)
		if err != nil {
			return collaboratorErr("Allowance", err)
		}
		if allowance.LessThan(l.Price) {
			return listing.ErrInsufficientFunds
		}

		if err := ft.TransferFrom(c, im.cfg.Market, caller, l.Seller, l.Price, nil); err != nil {
			return collaboratorErr("fungible TransferFrom", err)
		}

		nft, err := im.directory.NonFungible(c, l.NonFungibleRegistry)
		if err != nil {
			return collaboratorErr("directory.NonFungible", err)
		}
		if err := nft.TransferFrom(c, im.cfg.Market, l.Seller, caller, l.AssetId, nil); err != nil {
			return collaboratorErr("nonfungible TransferFrom", err)
		}

		// the market closes the listing, the buyer is neither seller nor market
		if err := im.closeListing(c, im.cfg.Market, id, l, listing.StatusSold, caller); err != nil {
			return err
		}

		sale = listing.Sale{Id: id, Listing: *l, Buyer: caller.ToLower(), Time: l.UpdatedAt}
		return nil
	})
	if err != nil {
		im.logFailure(c, "buy", err)
		return err
	}

	met.BumpSum("sold", 1)
	c.Info("listing sold")
	if im.notifier != nil {
		im.notifier.NotifySold(c, sale)
	}
	return nil
}

func (im *impl) Cancel(c ctx.Ctx, caller domain.Address, id listing.ListingId) error {
	defer met.BumpTime("cancel.time").End()

	c = ctx.WithFields(c, log.Fields{"caller": caller, "listingId": id})

	err := im.seq.do(c, "cancel", func(c ctx.Ctx) error {
		l, err := im.findListing(c, id)
		if err != nil {
			return err
		}
		return im.closeListing(c, caller, id, l, listing.StatusCancelled, "")
	})
	if err != nil {
		im.logFailure(c, "cancel", err)
		return err
	}
	return nil
}

func (im *impl) ListListings(c ctx.Ctx, onlyActive bool) ([]listing.Entry, error) {
	var res []listing.Entry
	err := im.seq.read(c, "listListings", func(c ctx.Ctx) error {
		var err error
		res, err = im.repo.FindAll(c, onlyActive)
		return err
	})
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindOne(c ctx.Ctx, id listing.ListingId) (*listing.Listing, error) {
	var res *listing.Listing
	err := im.seq.read(c, "findOne", func(c ctx.Ctx) error {
		var err error
		res, err = im.findListing(c, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) Activities(c ctx.Ctx, id listing.ListingId) ([]listing.Activity, error) {
	var res []listing.Activity
	err := im.seq.read(c, "activities", func(c ctx.Ctx) error {
		if _, err := im.findListing(c, id); err != nil {
			return err
		}
		var err error
		res, err = im.activities.FindByListing(c, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) findListing(c ctx.Ctx, id listing.ListingId) (*listing.Listing, error) {
	l, err := im.repo.FindOne(c, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, xerrors.Errorf("listing %d: %w", id, listing.ErrNoSuchListing)
	} else if err != nil {
		c.WithField("err", err).Error("repo.FindOne failed")
		return nil, err
	}
	return l, nil
}

// closeListing is the one way a listing leaves the active state. Closing a
// listing that is already closed succeeds and writes nothing.
func (im *impl) closeListing(c ctx.Ctx, caller domain.Address, id listing.ListingId, l *listing.Listing, status listing.Status, counterparty domain.Address) error {
	if !caller.Equals(l.Seller) && !caller.Equals(im.cfg.Market) {
		return listing.ErrNotAuthorized
	}

	now := im.timeNow()
	if !l.Close(status, now) {
		return nil
	}
	if err := im.repo.Update(c, id, *l); err != nil {
		c.WithField("err", err).Error("repo.Update failed")
		return err
	}

	typ := listing.ActivityTypeCancelListing
	account := caller.ToLower()
	if status == listing.StatusSold {
		typ = listing.ActivityTypeSold
		account = l.Seller
	} else {
		met.BumpSum("cancelled", 1)
	}
	return im.record(c, id, *l, typ, account, counterparty.ToLower(), now)
}

func (im *impl) record(c ctx.Ctx, id listing.ListingId, l listing.Listing, typ listing.ActivityType, account, counterparty domain.Address, at time.Time) error {
	a := listing.Activity{
		Id:               im.newId(),
		ListingId:        id,
		Type:             typ,
		Account:          account,
		Counterparty:     counterparty,
		Price:            l.Price,
		FungibleRegistry: l.FungibleRegistry,
		Time:             at,
	}
	if err := im.activities.Insert(c, a); err != nil {
		c.WithField("err", err).Error("activities.Insert failed")
		return err
	}
	return nil
}

// logFailure logs rejected calls as warnings and everything else as errors.
func (im *impl) logFailure(c ctx.Ctx, op string, err error) {
	met.BumpSum("err", 1, "op", op)
	for _, rejected := range []error{
		listing.ErrNotOwner,
		listing.ErrNotApproved,
		listing.ErrNoSuchListing,
		listing.ErrInsufficientFunds,
		listing.ErrNotAuthorized,
		listing.ErrIdSpaceExhausted,
	} {
		if errors.Is(err, rejected) {
			c.WithField("err", err).Warn(op + " rejected")
			return
		}
	}
	c.WithField("err", err).Error(op + " failed")
}

type collaboratorError struct {
	op  string
	err error
}

func collaboratorErr(op string, err error) error {
	return &collaboratorError{op: op, err: err}
}

func (e *collaboratorError) Error() string {
	return e.op + ": " + listing.ErrCollaboratorFailure.Error() + ": " + e.err.Error()
}

func (e *collaboratorError) Is(target error) bool {
	return target == listing.ErrCollaboratorFailure
}

func (e *collaboratorError) Unwrap() error {
	return e.err
}
