package usecase

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/asset"
)

type fungible struct {
	*ledger
	address domain.Address
}

func (f *fungible) Allowance(c ctx.Ctx, owner, spender domain.Address) (allowance decimal.Decimal, err error) {
	err = f.tx.View(c, func(c ctx.Ctx) error {
		allowance, err = f.repo.Allowance(c, f.address, owner, spender)
		return err
	})
	return allowance, err
}

// TransferFrom spends allowance granted by `from` to spender, even when
// spender is `from` itself.
func (f *fungible) TransferFrom(c ctx.Ctx, spender, from, to domain.Address, amount decimal.Decimal, data []byte) error {
	if !domain.IsValidAmount(amount) || to.IsEmpty() {
		return domain.ErrBadParamInput
	}
	return f.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		allowance, err := f.repo.Allowance(c, f.address, from, spender)
		if err != nil {
			return err
		}
		if allowance.LessThan(amount) {
			return asset.ErrInsufficientAllowance
		}
		balance, err := f.repo.Balance(c, f.address, from)
		if err != nil {
			return err
		}
		if balance.LessThan(amount) {
			return asset.ErrInsufficientBalance
		}

		if err := f.repo.SetAllowance(c, f.address, from, spender, allowance.Sub(amount)); err != nil {
			return err
		}
		if err := f.repo.SetBalance(c, f.address, from, balance.Sub(amount)); err != nil {
			return err
		}
		// read again, from and to may be the same account
		received, err := f.repo.Balance(c, f.address, to)
		if err != nil {
			return err
		}
		return f.repo.SetBalance(c, f.address, to, received.Add(amount))
	})
}

type nonFungible struct {
	*ledger
	address domain.Address
}

func (n *nonFungible) OwnerOf(c ctx.Ctx, id domain.TokenId) (owner domain.Address, err error) {
	err = n.tx.View(c, func(c ctx.Ctx) error {
		owner, err = n.repo.OwnerOf(c, n.address, id)
		return err
	})
	if errors.Is(err, asset.ErrAssetNotFound) {
		return "", nil
	}
	return owner, err
}

// Allowance is true when operator is approved for id or for every asset of
// owner.
func (n *nonFungible) Allowance(c ctx.Ctx, owner, operator domain.Address, id domain.TokenId) (allowed bool, err error) {
	err = n.tx.View(c, func(c ctx.Ctx) error {
		allowed, err = n.repo.HasGrant(c, n.address, asset.NonFungibleGrant{Owner: owner, Operator: operator})
		if err != nil || allowed || id.IsEmpty() {
			return err
		}
		allowed, err = n.repo.HasGrant(c, n.address, asset.NonFungibleGrant{Owner: owner, Operator: operator, TokenId: id})
		return err
	})
	return allowed, err
}

func (n *nonFungible) TransferFrom(c ctx.Ctx, operator, from, to domain.Address, id domain.TokenId, data []byte) error {
	if to.IsEmpty() {
		return domain.ErrBadParamInput
	}
	return n.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		owner, err := n.repo.OwnerOf(c, n.address, id)
		if err != nil {
			return err
		}
		if !owner.Equals(from) {
			return asset.ErrNotAssetOwner
		}
		if !operator.Equals(owner) {
			allowed, err := n.Allowance(c, owner, operator, id)
			if err != nil {
				return err
			}
			if !allowed {
				return asset.ErrNotAllowed
			}
			g := asset.NonFungibleGrant{Owner: owner, Operator: operator, TokenId: id}
			if err := n.repo.SetGrant(c, n.address, g, false); err != nil {
				return err
			}
		}
		return n.repo.SetOwner(c, n.address, id, to)
	})
}
