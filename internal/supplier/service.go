package supplier

import (
	"context"
	"fmt"
	"strings"

	"spicery-be/internal/logger"
	"spicery-be/internal/metrics"
	"spicery-be/internal/utils"
	"spicery-be/internal/validate"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Supplier, error)
	Get(ctx context.Context, id string) (*Supplier, error)
	Register(ctx context.Context, input RegisterInput) (*Supplier, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Supplier, error) {
	timer := metrics.StartTimer("supplier", "list")
	suppliers, err := s.repo.List(ctx)
	timer.Done(err)
	return suppliers, err
}

func (s *service) Get(ctx context.Context, id string) (*Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

// Register records an application from a prospective supplier. New
// suppliers start pending with no rating and no orders.
func (s *service) Register(ctx context.Context, input RegisterInput) (*Supplier, error) {
	sup := Supplier{
		ID:        utils.NewID(utils.PrefixSupplier),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Whatsapp:  utils.NilIfBlank(input.Whatsapp),
		Category:  strings.TrimSpace(input.Category),
		Status:    StatusPending,
		Message:   utils.NilIfBlank(input.Message),
		CreatedAt: utils.NowMillis(),
	}

	errs := &validate.Error{}
	for field, v := range map[string]string{"name": sup.Name, "email": sup.Email, "phone": sup.Phone, "category": sup.Category} {
		if v == "" {
			errs.Add(field, field+" is required")
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	timer := metrics.StartTimer("supplier", "create")
	err := s.repo.Create(ctx, sup)
	timer.Done(err)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to register supplier", zap.Error(err))
		return nil, err
	}

	logger.FromCtx(ctx).Info("supplier registered", zap.String("supplier_id", sup.ID))
	return &sup, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !status.Valid() {
		return validate.NewError("status", fmt.Sprintf("unknown status %q", status))
	}

	timer := metrics.StartTimer("supplier", "update_status")
	err := s.repo.UpdateStatus(ctx, id, status)
	timer.Done(err)
	return err
}
