package repository

import (
	"sort"
	"sync"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/service/store/memory"
)

// MemoryRepo is a listing.Repo kept in process memory.
type MemoryRepo interface {
	listing.Repo
	memory.Participant
}

type memoryImpl struct {
	mu       sync.RWMutex
	listings map[listing.ListingId]listing.Listing
	nextId   uint64
}

func NewMemory() MemoryRepo {
	return &memoryImpl{listings: map[listing.ListingId]listing.Listing{}}
}

func (im *memoryImpl) Snapshot() func() {
	im.mu.RLock()
	saved := make(map[listing.ListingId]listing.Listing, len(im.listings))
	for k, v := range im.listings {
		saved[k] = v
	}
	nextId := im.nextId
	im.mu.RUnlock()

	return func() {
		im.mu.Lock()
		defer im.mu.Unlock()
		im.listings = saved
		im.nextId = nextId
	}
}

func (im *memoryImpl) NextId(c ctx.Ctx) (uint64, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.nextId, nil
}

func (im *memoryImpl) Insert(c ctx.Ctx, id listing.ListingId, l listing.Listing) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	if _, ok := im.listings[id]; ok {
		return domain.ErrConflict
	}
	im.listings[id] = l
	if next := uint64(id) + 1; next > im.nextId {
		im.nextId = next
	}
	return nil
}

func (im *memoryImpl) FindOne(c ctx.Ctx, id listing.ListingId) (*listing.Listing, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	l, ok := im.listings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (im *memoryImpl) Update(c ctx.Ctx, id listing.ListingId, l listing.Listing) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	if _, ok := im.listings[id]; !ok {
		return domain.ErrNotFound
	}
	im.listings[id] = l
	return nil
}

func (im *memoryImpl) FindAll(c ctx.Ctx, onlyActive bool) ([]listing.Entry, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	res := make([]listing.Entry, 0, len(im.listings))
	for id, l := range im.listings {
		if onlyActive && !l.Listed {
			continue
		}
		res = append(res, listing.Entry{Id: id, Listing: l})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	return res, nil
}

// MemoryActivityRepo is a listing.ActivityRepo kept in process memory.
type MemoryActivityRepo interface {
	listing.ActivityRepo
	memory.Participant
}

type memoryActivityImpl struct {
	mu         sync.RWMutex
	activities map[listing.ListingId][]listing.Activity
}

func NewMemoryActivity() MemoryActivityRepo {
	return &memoryActivityImpl{activities: map[listing.ListingId][]listing.Activity{}}
}

func (im *memoryActivityImpl) Snapshot() func() {
	im.mu.RLock()
	saved := make(map[listing.ListingId][]listing.Activity, len(im.activities))
	for k, v := range im.activities {
		// appends never touch the prefix, keeping the slice header is enough
		saved[k] = v[:len(v):len(v)]
	}
	im.mu.RUnlock()

	return func() {
		im.mu.Lock()
		defer im.mu.Unlock()
		im.activities = saved
	}
}

func (im *memoryActivityImpl) Insert(c ctx.Ctx, a listing.Activity) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.activities[a.ListingId] = append(im.activities[a.ListingId], a)
	return nil
}

func (im *memoryActivityImpl) FindByListing(c ctx.Ctx, id listing.ListingId) ([]listing.Activity, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	res := make([]listing.Activity, len(im.activities[id]))
	copy(res, im.activities[id])
	return res, nil
}
