package usecase

import (
	"errors"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/asset"
)

type ledger struct {
	repo asset.LedgerRepo
	tx   domain.Transactor
}

// New returns the sandbox ledger. Every write runs inside tx, joining the
// caller's unit of work when there is one.
func New(repo asset.LedgerRepo, tx domain.Transactor) asset.Ledger {
	return &ledger{repo: repo, tx: tx}
}

func (im *ledger) registry(c ctx.Ctx, address domain.Address, kind asset.Kind) (*asset.Registry, error) {
	r, err := im.repo.FindRegistry(c, address)
	if err != nil {
		return nil, err
	}
	if r.Kind != kind {
		return nil, xerrors.Errorf("%s is not %s: %w", address, kind, asset.ErrUnknownRegistry)
	}
	return r, nil
}

func (im *ledger) NonFungible(c ctx.Ctx, registry domain.Address) (asset.NonFungibleRegistry, error) {
	var r *asset.Registry
	err := im.tx.View(c, func(c ctx.Ctx) (err error) {
		r, err = im.registry(c, registry, asset.KindNonFungible)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &nonFungible{ledger: im, address: r.Address}, nil
}

func (im *ledger) Fungible(c ctx.Ctx, registry domain.Address) (asset.FungibleRegistry, error) {
	var r *asset.Registry
	err := im.tx.View(c, func(c ctx.Ctx) (err error) {
		r, err = im.registry(c, registry, asset.KindFungible)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &fungible{ledger: im, address: r.Address}, nil
}

func (im *ledger) Registries(c ctx.Ctx) (rs []asset.Registry, err error) {
	err = im.tx.View(c, func(c ctx.Ctx) error {
		rs, err = im.repo.FindRegistries(c)
		return err
	})
	return rs, err
}

func (im *ledger) UpsertRegistry(c ctx.Ctx, r asset.Registry) error {
	if r.Kind != asset.KindFungible && r.Kind != asset.KindNonFungible {
		return domain.ErrBadParamInput
	}
	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		return im.repo.UpsertRegistry(c, r)
	})
}

func (im *ledger) BalanceOf(c ctx.Ctx, registry, owner domain.Address) (balance decimal.Decimal, err error) {
	err = im.tx.View(c, func(c ctx.Ctx) error {
		if _, err := im.registry(c, registry, asset.KindFungible); err != nil {
			return err
		}
		balance, err = im.repo.Balance(c, registry, owner)
		return err
	})
	return balance, err
}

func (im *ledger) FungibleAllowance(c ctx.Ctx, registry, owner, spender domain.Address) (allowance decimal.Decimal, err error) {
	err = im.tx.View(c, func(c ctx.Ctx) error {
		if _, err := im.registry(c, registry, asset.KindFungible); err != nil {
			return err
		}
		allowance, err = im.repo.Allowance(c, registry, owner, spender)
		return err
	})
	return allowance, err
}

// ApproveFungible sets the allowance of spender, replacing any previous value.
func (im *ledger) ApproveFungible(c ctx.Ctx, registry, owner, spender domain.Address, amount decimal.Decimal) error {
	if !domain.IsValidAmount(amount) || owner.IsEmpty() || spender.IsEmpty() {
		return domain.ErrBadParamInput
	}
	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if _, err := im.registry(c, registry, asset.KindFungible); err != nil {
			return err
		}
		return im.repo.SetAllowance(c, registry, owner, spender, amount)
	})
}

func (im *ledger) MintFungible(c ctx.Ctx, registry, to domain.Address, amount decimal.Decimal) error {
	if !domain.IsValidAmount(amount) || to.IsEmpty() {
		return domain.ErrBadParamInput
	}
	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if _, err := im.registry(c, registry, asset.KindFungible); err != nil {
			return err
		}
		balance, err := im.repo.Balance(c, registry, to)
		if err != nil {
			return err
		}
		return im.repo.SetBalance(c, registry, to, balance.Add(amount))
	})
}

func (im *ledger) OwnerOf(c ctx.Ctx, registry domain.Address, id domain.TokenId) (owner domain.Address, err error) {
	err = im.tx.View(c, func(c ctx.Ctx) error {
		if _, err := im.registry(c, registry, asset.KindNonFungible); err != nil {
			return err
		}
		owner, err = im.repo.OwnerOf(c, registry, id)
		return err
	})
	return owner, err
}

func (im *ledger) ApproveNonFungible(c ctx.Ctx, registry, owner, operator domain.Address, id domain.TokenId, approved bool) error {
	if owner.IsEmpty() || operator.IsEmpty() || owner.Equals(operator) {
		return domain.ErrBadParamInput
	}
	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if _, err := im.registry(c, registry, asset.KindNonFungible); err != nil {
			return err
		}
		if !id.IsEmpty() {
			current, err := im.repo.OwnerOf(c, registry, id)
			if err != nil {
				return err
			}
			if !current.Equals(owner) {
				return asset.ErrNotAssetOwner
			}
		}
		g := asset.NonFungibleGrant{Owner: owner, Operator: operator, TokenId: id}
		return im.repo.SetGrant(c, registry, g, approved)
	})
}

func (im *ledger) MintNonFungible(c ctx.Ctx, registry, to domain.Address, id domain.TokenId) error {
	if to.IsEmpty() || id.IsEmpty() {
		return domain.ErrBadParamInput
	}
	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if _, err := im.registry(c, registry, asset.KindNonFungible); err != nil {
			return err
		}
		if _, err := im.repo.OwnerOf(c, registry, id); err == nil {
			return asset.ErrAssetExists
		} else if !errors.Is(err, asset.ErrAssetNotFound) {
			return err
		}
		return im.repo.SetOwner(c, registry, id, to)
	})
}
