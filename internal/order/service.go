package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"spicery-be/internal/events"
	"spicery-be/internal/logger"
	"spicery-be/internal/metrics"
	"spicery-be/internal/utils"
	"spicery-be/internal/validate"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	Create(ctx context.Context, input CreateInput) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
}

type service struct {
	repo      Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(repo Repository, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	timer := metrics.StartTimer("order", "list")
	orders, err := s.repo.List(ctx, filter)
	timer.Done(err)

	if err != nil {
		logger.FromCtx(ctx).Error("failed to list orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
	)

	o, err := s.build(input)
	if err != nil {
		log.Debug("rejected order input", zap.Error(err))
		return nil, err
	}
	log = log.With(zap.String("order_id", o.ID))

	timer := metrics.StartTimer("order", "create")
	err = s.repo.Create(ctx, *o)
	timer.Done(err)
	if err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.Int("items", len(o.Items)),
		zap.String("amount", o.Amount.String()),
		zap.Duration("duration", timer.Duration()),
	)

	s.publish(ctx, events.Event{
		Type:       events.TypeOrderCreated,
		OrderID:    o.ID,
		Status:     string(o.Status),
		Email:      o.Email,
		Amount:     o.Amount.String(),
		Currency:   o.Currency,
		OccurredAt: s.now().UnixMilli(),
	})
	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", id),
	)

	if !status.Valid() {
		return nil, validate.NewError("status", fmt.Sprintf("unknown status %q", status))
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status.Terminal() {
		log.Debug("order is final", zap.String("status", string(current.Status)))
		return nil, fmt.Errorf("%w: order is already %s", ErrInvalidTransition, current.Status)
	}
	if !CanTransition(current.Status, status) {
		log.Debug("rejected transition", zap.String("from", string(current.Status)), zap.String("to", string(status)))
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	timer := metrics.StartTimer("order", "update_status")
	err = s.repo.UpdateStatus(ctx, id, current.Status, status)
	timer.Done(err)
	if err != nil {
		if !errors.Is(err, ErrStatusConflict) {
			log.Error("failed to update order status", zap.Error(err))
		}
		return nil, err
	}

	previous := current.Status
	current.Status = status
	log.Info("order status changed",
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
		zap.String("changed_by", utils.GetUserEmailFromContext(ctx)),
	)

	s.publish(ctx, events.Event{
		Type:           events.TypeOrderStatusChanged,
		OrderID:        id,
		Status:         string(status),
		PreviousStatus: string(previous),
		Email:          current.Email,
		OccurredAt:     s.now().UnixMilli(),
	})
	return current, nil
}

func (s *service) publish(ctx context.Context, ev events.Event) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		logger.FromCtx(ctx).Warn("failed to publish order event",
			zap.String("type", ev.Type),
			zap.String("order_id", ev.OrderID),
			zap.Error(err),
		)
	}
}

// build validates input and fills in the defaults: id, Pending status,
// timestamp, display date, currency and amount.
func (s *service) build(in CreateInput) (*Order, error) {
	errs := &validate.Error{}

	o := &Order{
		ID:        strings.TrimSpace(in.ID),
		Customer:  strings.TrimSpace(in.Customer),
		Email:     strings.TrimSpace(in.Email),
		Whatsapp:  utils.NilIfBlank(in.Whatsapp),
		Address:   strings.TrimSpace(in.Address),
		Date:      strings.TrimSpace(in.Date),
		Currency:  strings.ToUpper(strings.TrimSpace(in.Currency)),
		Status:    StatusPending,
		Timestamp: in.Timestamp,
		Items:     make([]Item, 0, len(in.Items)),
	}

	if o.Customer == "" {
		errs.Add("customer", "customer is required")
	}
	if o.Email == "" {
		errs.Add("email", "email is required")
	}
	if o.Address == "" {
		errs.Add("address", "address is required")
	}
	if in.Status != "" && in.Status != StatusPending {
		errs.Add("status", "new orders must start as Pending")
	}

	computed := decimal.Zero
	for i, it := range in.Items {
		field := fmt.Sprintf("items.%d", i)
		name := strings.TrimSpace(it.Name)
		if name == "" {
			errs.Add(field+".name", field+".name is required")
		}
		if !nonNegative(it.Quantity) {
			errs.Add(field+".quantity", field+".quantity must be >= 0")
		}
		if !nonNegative(it.Price) {
			errs.Add(field+".price", field+".price must be >= 0")
		}

		o.Items = append(o.Items, Item{
			ID:        utils.NewID(utils.PrefixItem),
			ProductID: utils.NilIfBlank(it.ProductID),
			Name:      name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
		if nonNegative(it.Quantity) && nonNegative(it.Price) {
			computed = computed.Add(decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.Price)))
		}
	}

	switch {
	case in.Amount != nil:
		if in.Amount.IsNegative() {
			errs.Add("amount", "amount must be >= 0")
		}
		o.Amount = *in.Amount
	case strings.TrimSpace(in.Total) != "":
		amount, currency, err := ParseTotal(in.Total)
		if err != nil {
			errs.Add("total", err.Error())
		} else if amount.IsNegative() {
			errs.Add("total", "total must be >= 0")
		}
		o.Amount = amount
		if o.Currency == "" {
			o.Currency = currency
		}
	default:
		o.Amount = computed
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	if o.ID == "" {
		o.ID = utils.NewID(utils.PrefixOrder)
	}
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	if o.Timestamp <= 0 {
		o.Timestamp = s.now().UnixMilli()
	}
	if o.Date == "" {
		o.Date = time.UnixMilli(o.Timestamp).Format(time.DateOnly)
	}
	return o, nil
}

func nonNegative(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}
