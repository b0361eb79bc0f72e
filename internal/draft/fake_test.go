package draft

import (
	"context"
	"sync"
	"time"

	"github.com/safar/teebay/internal/database"
	"github.com/safar/teebay/internal/models"
	"github.com/safar/teebay/internal/store"
)

// memStore keeps drafts and products in maps. WithinTx snapshots both maps
// and restores them when fn fails.
type memStore struct {
	mu       sync.Mutex
	drafts   map[int64]models.DraftSession
	products map[int64]models.Product
	nextID   int64

	getErr    error
	upsertErr error
	createErr error
}

func newMemStore() *memStore {
	return &memStore{
		drafts:   map[int64]models.DraftSession{},
		products: map[int64]models.Product{},
	}
}

func (s *memStore) GetDraft(_ context.Context, userID int64) (*models.DraftSession, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	d, ok := s.drafts[userID]
	if !ok {
		return nil, database.ErrDraftNotFound
	}
	d.FormData = MergePartial(models.ProductFormData{}, d.FormData)
	return &d, nil
}

func (s *memStore) UpsertDraft(_ context.Context, userID int64, step int, data models.ProductFormData) (*models.DraftSession, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	now := time.Now()
	d, ok := s.drafts[userID]
	if !ok {
		d = models.DraftSession{UserID: userID, CreatedAt: now}
	}
	d.Step = step
	d.FormData = data
	d.UpdatedAt = now
	s.drafts[userID] = d
	return &d, nil
}

func (s *memStore) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, database.ErrProductNotFound
	}
	return &p, nil
}

func (s *memStore) CreateProduct(_ context.Context, p store.CreateProductParams) (*models.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	product := models.Product{
		ID:          s.nextID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		RentPrice:   p.RentPrice,
		RentPeriod:  p.RentPeriod,
		Categories:  p.Categories,
		IsAvailable: true,
		Version:     1,
	}
	s.products[product.ID] = product
	return &product, nil
}

func (s *memStore) DeleteDraft(_ context.Context, userID int64) error {
	if _, ok := s.drafts[userID]; !ok {
		return database.ErrDraftNotFound
	}
	delete(s.drafts, userID)
	return nil
}

func (s *memStore) WithinTx(_ context.Context, fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := make(map[int64]models.DraftSession, len(s.drafts))
	for k, v := range s.drafts {
		drafts[k] = v
	}
	products := make(map[int64]models.Product, len(s.products))
	for k, v := range s.products {
		products[k] = v
	}
	nextID := s.nextID

	if err := fn(s); err != nil {
		s.drafts, s.products, s.nextID = drafts, products, nextID
		return err
	}
	return nil
}
