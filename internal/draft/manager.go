// Package draft runs the multi-step product creation wizard. Each user has at
// most one draft; steps are merged into it until the user submits.
package draft

import (
	"context"
	"errors"
	"log/slog"

	"github.com/safar/teebay/internal/apperr"
	"github.com/safar/teebay/internal/database"
	"github.com/safar/teebay/internal/models"
	"github.com/safar/teebay/internal/store"
)

type Store interface {
	GetDraft(ctx context.Context, userID int64) (*models.DraftSession, error)
	UpsertDraft(ctx context.Context, userID int64, step int, data models.ProductFormData) (*models.DraftSession, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	WithinTx(ctx context.Context, fn func(Tx) error) error
}

// Tx is the subset of Store available inside a transaction.
type Tx interface {
	GetDraft(ctx context.Context, userID int64) (*models.DraftSession, error)
	CreateProduct(ctx context.Context, p store.CreateProductParams) (*models.Product, error)
	DeleteDraft(ctx context.Context, userID int64) error
}

// State is what the wizard shows the user.
type State struct {
	Step       int
	TotalSteps int
	FormData   models.ProductFormData
}

// EmptyState is returned when the user has no draft in progress.
func EmptyState() State {
	blank := ""
	zero := 0.0
	period := models.RentDaily

	return State{
		Step:       StepTitle,
		TotalSteps: TotalSteps,
		FormData: models.ProductFormData{
			Title:       &blank,
			Categories:  []models.Category{},
			Description: &blank,
			Price:       &zero,
			RentPrice:   &zero,
			RentPeriod:  &period,
		},
	}
}

type Manager struct {
	store  Store
	logger *slog.Logger
}

func NewManager(s Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: s, logger: logger}
}

// SaveStep validates partial against the schema of step, merges it into the
// user's draft and stores the result with step as the current step.
func (m *Manager) SaveStep(ctx context.Context, userID int64, step int, partial models.ProductFormData) (*State, error) {
	if !ValidStep(step) {
		return nil, invalidStep(step)
	}
	if step != StepReview {
		if err := ValidateStep(step, partial); err != nil {
			return nil, err
		}
	}

	var prev models.ProductFormData
	existing, err := m.store.GetDraft(ctx, userID)
	switch {
	case err == nil:
		prev = existing.FormData
	case errors.Is(err, database.ErrDraftNotFound):
	default:
		return nil, m.internal(ctx, "load draft", userID, err)
	}

	merged := MergePartial(prev, partial)
	if step == StepReview {
		if err := ValidateStep(step, merged); err != nil {
			return nil, err
		}
	}

	saved, err := m.store.UpsertDraft(ctx, userID, step, merged)
	if err != nil {
		return nil, m.internal(ctx, "save draft", userID, err)
	}

	return &State{Step: saved.Step, TotalSteps: TotalSteps, FormData: saved.FormData}, nil
}

// GetState returns the user's draft, or the default empty state. With a
// product id it returns that product framed as form data, for editing.
func (m *Manager) GetState(ctx context.Context, userID int64, productID *int64) (*State, error) {
	if productID != nil {
		p, err := m.store.GetProduct(ctx, *productID)
		if errors.Is(err, database.ErrProductNotFound) {
			return nil, apperr.NotFound("Product")
		}
		if err != nil {
			return nil, m.internal(ctx, "load product", userID, err)
		}
		if p.IsDeleted {
			return nil, apperr.NotFound("Product")
		}
		return &State{Step: StepTitle, TotalSteps: TotalSteps, FormData: FromProduct(p)}, nil
	}

	d, err := m.store.GetDraft(ctx, userID)
	if errors.Is(err, database.ErrDraftNotFound) {
		s := EmptyState()
		return &s, nil
	}
	if err != nil {
		return nil, m.internal(ctx, "load draft", userID, err)
	}

	return &State{Step: d.Step, TotalSteps: TotalSteps, FormData: d.FormData}, nil
}

// Submit turns the user's draft into a product and removes the draft. Both
// happen in one transaction: on failure the draft is left as it was.
func (m *Manager) Submit(ctx context.Context, userID int64) (*models.Product, error) {
	var product *models.Product

	err := m.store.WithinTx(ctx, func(tx Tx) error {
		d, err := tx.GetDraft(ctx, userID)
		if err != nil {
			return err
		}

		listing, err := ValidateComplete(d.FormData)
		if err != nil {
			return err
		}

		product, err = tx.CreateProduct(ctx, listing.params(userID))
		if err != nil {
			return err
		}

		// A concurrent submit that already removed the draft makes this fail,
		// which rolls back the duplicate product.
		return tx.DeleteDraft(ctx, userID)
	})
	if err != nil {
		var appErr *apperr.Error
		switch {
		case errors.As(err, &appErr):
			return nil, appErr
		case errors.Is(err, database.ErrDraftNotFound):
			return nil, apperr.Validation("No product form in progress", nil)
		default:
			return nil, m.internal(ctx, "submit product form", userID, err)
		}
	}

	m.logger.InfoContext(ctx, "product created from draft", "user_id", userID, "product_id", product.ID)
	return product, nil
}

func (m *Manager) internal(ctx context.Context, op string, userID int64, err error) error {
	m.logger.ErrorContext(ctx, op+" failed", "user_id", userID, "error", err)
	return apperr.Internal(err)
}
