package product

import (
	"context"
	"errors"
	"math"
	"strings"

	"spicery-be/internal/logger"
	"spicery-be/internal/metrics"
	"spicery-be/internal/utils"
	"spicery-be/internal/validate"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input Input) (*Product, error)
	Update(ctx context.Context, id string, input Input) (*Product, error)
	Delete(ctx context.Context, id string) error
	RecordReview(ctx context.Context, productID string, input ReviewInput) (*Product, error)
	ListReviews(ctx context.Context, productID string) ([]Review, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	timer := metrics.StartTimer("product", "list")
	products, err := s.repo.List(ctx)
	timer.Done(err)

	if err != nil {
		logger.FromCtx(ctx).Error("failed to list products", zap.Error(err))
		return nil, err
	}
	return products, nil
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input Input) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	input = normalize(input)
	if err := validateInput(input); err != nil {
		log.Debug("rejected product input", zap.Error(err))
		return nil, err
	}

	p := Product{
		ID:          utils.NewID(utils.PrefixProduct),
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		Description: input.Description,
		Status:      StatusFor(input.Stock),
		Image:       input.Image,
	}

	timer := metrics.StartTimer("product", "create")
	err := s.repo.Create(ctx, p)
	timer.Done(err)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created",
		zap.String("product_id", p.ID),
		zap.String("status", string(p.Status)),
		zap.Duration("duration", timer.Duration()),
	)
	return &p, nil
}

func (s *service) Update(ctx context.Context, id string, input Input) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.String("product_id", id),
	)

	if strings.TrimSpace(id) == "" {
		return nil, validate.NewError("id", "product id is required")
	}

	input = normalize(input)
	if err := validateInput(input); err != nil {
		log.Debug("rejected product input", zap.Error(err))
		return nil, err
	}

	timer := metrics.StartTimer("product", "update")
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		timer.Done(err)
		return nil, err
	}

	current.Name = input.Name
	current.Category = input.Category
	current.Price = input.Price
	current.Stock = input.Stock
	current.Description = input.Description
	current.Image = input.Image
	current.Status = StatusFor(input.Stock)

	err = s.repo.Update(ctx, *current)
	timer.Done(err)
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			log.Error("failed to update product", zap.Error(err))
		}
		return nil, err
	}

	log.Info("product updated", zap.String("status", string(current.Status)))
	return current, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	timer := metrics.StartTimer("product", "delete")
	err := s.repo.Delete(ctx, id)
	timer.Done(err)

	if err != nil {
		logger.FromCtx(ctx).Error("failed to delete product", zap.String("product_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) RecordReview(ctx context.Context, productID string, input ReviewInput) (*Product, error) {
	errs := &validate.Error{}
	input.UserEmail = strings.TrimSpace(input.UserEmail)
	if input.UserEmail == "" {
		errs.Add("userEmail", "userEmail is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		errs.Add("rating", "rating must be between 1 and 5")
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	review := Review{
		ID:        utils.NewID(utils.PrefixReview),
		ProductID: productID,
		UserEmail: input.UserEmail,
		Rating:    input.Rating,
		Comment:   utils.NilIfBlank(input.Comment),
		CreatedAt: utils.NowMillis(),
	}

	timer := metrics.StartTimer("review", "create")
	p, err := s.repo.CreateReview(ctx, review)
	timer.Done(err)
	return p, err
}

func (s *service) ListReviews(ctx context.Context, productID string) ([]Review, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, productID)
}

func normalize(in Input) Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = utils.NilIfBlank(in.Description)
	in.Image = utils.NilIfBlank(in.Image)
	return in
}

func validateInput(in Input) error {
	errs := &validate.Error{}

	if in.Name == "" {
		errs.Add("name", "name is required")
	}
	if math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price < 0 {
		errs.Add("price", "price must be >= 0")
	}
	if math.IsNaN(in.Stock) || math.IsInf(in.Stock, 0) || in.Stock < 0 {
		errs.Add("stock", "stock must be >= 0")
	}

	return errs.OrNil()
}
