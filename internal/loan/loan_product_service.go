package loan

import (
	"context"

	loanerrors "go-ess/internal/loan/errors"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/money"
	"go-ess/internal/shared/query"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, companyID string, req ProductRequest) (ProductResponse, error)
	GetAll(ctx context.Context, companyID string, activeOnly bool) ([]ProductResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ProductResponse, error)
	Update(ctx context.Context, companyID, id string, req ProductRequest) (ProductResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type productService struct {
	repo   Repository
	logger *zap.Logger
}

func NewProductService(repo Repository, logger ...*zap.Logger) ProductService {
	l := zap.L().Named("loan.product_service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("loan.product_service")
	}
	return &productService{repo: repo, logger: l}
}

func (s *productService) Create(ctx context.Context, companyID string, req ProductRequest) (ProductResponse, error) {
	s.logger.Debug("create loan product requested",
		zap.String("company_id", companyID),
		zap.String("code", req.Code),
	)
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ProductResponse{}, apperror.ErrInvalidCompanyID
	}

	p := &Product{ID: uuid.New(), CompanyID: companyUUID, IsActive: true}
	if err := applyProductRequest(p, req); err != nil {
		s.logger.Warn("create loan product validation failed", zap.Error(err))
		return ProductResponse{}, err
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		s.logger.Error("create loan product persist failed", zap.Error(err))
		return ProductResponse{}, mapRepositoryError(err, loanerrors.ErrProductNotFound)
	}

	s.logger.Info("create loan product success", zap.String("product_id", p.ID.String()))
	return mapProductResponse(*p), nil
}

func (s *productService) GetAll(ctx context.Context, companyID string, activeOnly bool) ([]ProductResponse, error) {
	spec := query.Spec{Filter: map[string]any{}}
	if activeOnly {
		spec.Filter["is_active"] = true
	}
	products, err := s.repo.FindProducts(ctx, companyID, spec)
	if err != nil {
		s.logger.Error("list loan products failed", zap.Error(err))
		return nil, err
	}

	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = mapProductResponse(p)
	}
	return resp, nil
}

func (s *productService) GetByID(ctx context.Context, companyID, id string) (ProductResponse, error) {
	p, err := s.repo.FindProductByID(ctx, companyID, id)
	if err != nil {
		return ProductResponse{}, mapRepositoryError(err, loanerrors.ErrProductNotFound)
	}
	return mapProductResponse(*p), nil
}

func (s *productService) Update(ctx context.Context, companyID, id string, req ProductRequest) (ProductResponse, error) {
	p, err := s.repo.FindProductByID(ctx, companyID, id)
	if err != nil {
		return ProductResponse{}, mapRepositoryError(err, loanerrors.ErrProductNotFound)
	}
	if err := applyProductRequest(p, req); err != nil {
		s.logger.Warn("update loan product validation failed", zap.Error(err))
		return ProductResponse{}, err
	}
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		s.logger.Error("update loan product persist failed", zap.Error(err))
		return ProductResponse{}, mapRepositoryError(err, loanerrors.ErrProductNotFound)
	}

	s.logger.Info("update loan product success", zap.String("product_id", id))
	return mapProductResponse(*p), nil
}

func (s *productService) Delete(ctx context.Context, companyID, id string) error {
	if err := s.repo.DeleteProduct(ctx, companyID, id); err != nil {
		return mapRepositoryError(err, loanerrors.ErrProductNotFound)
	}
	s.logger.Info("delete loan product success", zap.String("product_id", id))
	return nil
}

func applyProductRequest(p *Product, req ProductRequest) error {
	if !validMethod(req.Method) {
		return loanerrors.ErrInvalidMethod
	}
	rate, err := money.ParseOptional(req.AnnualRate)
	if err != nil || rate.IsNegative() {
		return loanerrors.ErrInvalidRate
	}
	fee, err := money.ParseOptional(req.AdminFee)
	if err != nil || fee.IsNegative() {
		return loanerrors.ErrInvalidRate
	}
	minAmount, err := decimal.NewFromString(req.MinAmount)
	if err != nil || !minAmount.IsPositive() {
		return loanerrors.ErrInvalidAmount
	}
	maxAmount, err := decimal.NewFromString(req.MaxAmount)
	if err != nil || !maxAmount.IsPositive() {
		return loanerrors.ErrInvalidAmount
	}
	if minAmount.GreaterThan(maxAmount) || req.MinTermMonths > req.MaxTermMonths || req.MinTermMonths < 1 {
		return loanerrors.ErrInvalidProductBounds
	}
	if req.Method == MethodInterestFree {
		rate = decimal.Zero
	}

	p.Code = req.Code
	p.Name = req.Name
	p.Method = req.Method
	p.AnnualRate = rate
	p.AdminFee = money.Round2(fee)
	p.MinAmount = money.Round2(minAmount)
	p.MaxAmount = money.Round2(maxAmount)
	p.MinTermMonths = req.MinTermMonths
	p.MaxTermMonths = req.MaxTermMonths
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	return nil
}
