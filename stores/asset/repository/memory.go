package repository

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/asset"
	"github.com/x-xyz/marketplace/service/store/memory"
)

type balanceKey struct {
	registry domain.Address
	owner    domain.Address
}

type allowanceKey struct {
	registry domain.Address
	owner    domain.Address
	spender  domain.Address
}

type tokenKey struct {
	registry domain.Address
	id       domain.TokenId
}

type grantKey struct {
	registry domain.Address
	owner    domain.Address
	operator domain.Address
	id       domain.TokenId
}

type memoryState struct {
	registries map[domain.Address]asset.Registry
	balances   map[balanceKey]decimal.Decimal
	allowances map[allowanceKey]decimal.Decimal
	owners     map[tokenKey]domain.Address
	grants     map[grantKey]struct{}
}

func (s memoryState) clone() memoryState {
	n := newMemoryState()
	for k, v := range s.registries {
		n.registries[k] = v
	}
	for k, v := range s.balances {
		n.balances[k] = v
	}
	for k, v := range s.allowances {
		n.allowances[k] = v
	}
	for k, v := range s.owners {
		n.owners[k] = v
	}
	for k := range s.grants {
		n.grants[k] = struct{}{}
	}
	return n
}

func newMemoryState() memoryState {
	return memoryState{
		registries: map[domain.Address]asset.Registry{},
		balances:   map[balanceKey]decimal.Decimal{},
		allowances: map[allowanceKey]decimal.Decimal{},
		owners:     map[tokenKey]domain.Address{},
		grants:     map[grantKey]struct{}{},
	}
}

type memoryImpl struct {
	mu sync.RWMutex
	s  memoryState
}

// MemoryLedger is a LedgerRepo kept in process memory.
type MemoryLedger interface {
	asset.LedgerRepo
	memory.Participant
}

func NewMemory() MemoryLedger {
	return &memoryImpl{s: newMemoryState()}
}

func (im *memoryImpl) Snapshot() func() {
	im.mu.RLock()
	saved := im.s.clone()
	im.mu.RUnlock()
	return func() {
		im.mu.Lock()
		defer im.mu.Unlock()
		im.s = saved
	}
}

func (im *memoryImpl) UpsertRegistry(c ctx.Ctx, r asset.Registry) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	r.Address = r.Address.ToLower()
	im.s.registries[r.Address] = r
	return nil
}

func (im *memoryImpl) FindRegistry(c ctx.Ctx, address domain.Address) (*asset.Registry, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	r, ok := im.s.registries[address.ToLower()]
	if !ok {
		return nil, asset.ErrUnknownRegistry
	}
	return &r, nil
}

func (im *memoryImpl) FindRegistries(c ctx.Ctx) ([]asset.Registry, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	res := make([]asset.Registry, 0, len(im.s.registries))
	for _, r := range im.s.registries {
		res = append(res, r)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Address < res[j].Address })
	return res, nil
}

func (im *memoryImpl) Balance(c ctx.Ctx, registry, owner domain.Address) (decimal.Decimal, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.s.balances[balanceKey{registry.ToLower(), owner.ToLower()}], nil
}

func (im *memoryImpl) SetBalance(c ctx.Ctx, registry, owner domain.Address, amount decimal.Decimal) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.s.balances[balanceKey{registry.ToLower(), owner.ToLower()}] = amount
	return nil
}

func (im *memoryImpl) Allowance(c ctx.Ctx, registry, owner, spender domain.Address) (decimal.Decimal, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.s.allowances[allowanceKey{registry.ToLower(), owner.ToLower(), spender.ToLower()}], nil
}

func (im *memoryImpl) SetAllowance(c ctx.Ctx, registry, owner, spender domain.Address, amount decimal.Decimal) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.s.allowances[allowanceKey{registry.ToLower(), owner.ToLower(), spender.ToLower()}] = amount
	return nil
}

func (im *memoryImpl) OwnerOf(c ctx.Ctx, registry domain.Address, id domain.TokenId) (domain.Address, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	owner, ok := im.s.owners[tokenKey{registry.ToLower(), id}]
	if !ok {
		return "", asset.ErrAssetNotFound
	}
	return owner, nil
}

func (im *memoryImpl) SetOwner(c ctx.Ctx, registry domain.Address, id domain.TokenId, owner domain.Address) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.s.owners[tokenKey{registry.ToLower(), id}] = owner.ToLower()
	return nil
}

func toGrantKey(registry domain.Address, g asset.NonFungibleGrant) grantKey {
	return grantKey{registry.ToLower(), g.Owner.ToLower(), g.Operator.ToLower(), g.TokenId}
}

func (im *memoryImpl) HasGrant(c ctx.Ctx, registry domain.Address, g asset.NonFungibleGrant) (bool, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	_, ok := im.s.grants[toGrantKey(registry, g)]
	return ok, nil
}

func (im *memoryImpl) SetGrant(c ctx.Ctx, registry domain.Address, g asset.NonFungibleGrant, approved bool) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	if approved {
		im.s.grants[toGrantKey(registry, g)] = struct{}{}
	} else {
		delete(im.s.grants, toGrantKey(registry, g))
	}
	return nil
}
