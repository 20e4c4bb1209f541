package loan

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	loanerrors "go-ess/internal/loan/errors"
	"go-ess/internal/notification"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/money"
	"go-ess/internal/shared/query"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const referenceType = "loan"

// approvalChain maps each approval stage to the status it advances to.
var approvalChain = map[string]string{
	StatusSubmitted:       StatusManagerApproved,
	StatusManagerApproved: StatusHRApproved,
	StatusHRApproved:      StatusFinanceApproved,
}

var rejectable = map[string]bool{
	StatusSubmitted:       true,
	StatusManagerApproved: true,
	StatusHRApproved:      true,
	StatusFinanceApproved: true,
}

type Notifier interface {
	Notify(ctx context.Context, msg notification.Message)
}

type Service interface {
	Quote(ctx context.Context, companyID string, req QuoteRequest) (QuoteResponse, error)
	Apply(ctx context.Context, companyID, actorID string, req ApplyRequest) (LoanResponse, error)
	Submit(ctx context.Context, companyID, actorID, id string) (LoanResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string, req ApproveRequest) (LoanResponse, error)
	Reject(ctx context.Context, companyID, actorID, id string, req RejectRequest) (LoanResponse, error)
	Disburse(ctx context.Context, companyID, actorID, id string, req DisburseRequest) (LoanResponse, error)
	RecordRepayment(ctx context.Context, companyID, actorID, id string, req RepaymentRequest) (RepaymentResult, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]LoanResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LoanResponse, error)
	ListRepayments(ctx context.Context, companyID, id string) ([]RepaymentResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	notifier Notifier
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, notifier Notifier, logger ...*zap.Logger) Service {
	l := zap.L().Named("loan.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("loan.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

func (s *service) Quote(ctx context.Context, companyID string, req QuoteRequest) (QuoteResponse, error) {
	product, amount, quote, err := s.price(ctx, companyID, req)
	if err != nil {
		return QuoteResponse{}, err
	}
	return QuoteResponse{
		ProductID:     product.ID.String(),
		Method:        product.Method,
		Amount:        amount.StringFixed(2),
		TermMonths:    req.TermMonths,
		AnnualRate:    product.AnnualRate.String(),
		AdminFee:      product.AdminFee.StringFixed(2),
		Installment:   quote.Installment.StringFixed(2),
		TotalCost:     quote.TotalCost.StringFixed(2),
		TotalInterest: quote.TotalInterest.StringFixed(2),
	}, nil
}

// price loads the product, checks the bounds and prices the request.
func (s *service) price(ctx context.Context, companyID string, req QuoteRequest) (*Product, decimal.Decimal, Quote, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, decimal.Zero, Quote{}, loanerrors.ErrInvalidAmount
	}
	amount = money.Round2(amount)

	product, err := s.repo.FindProductByID(ctx, companyID, req.ProductID)
	if err != nil {
		return nil, decimal.Zero, Quote{}, mapRepositoryError(err, loanerrors.ErrProductNotFound)
	}
	if !product.IsActive {
		return nil, decimal.Zero, Quote{}, loanerrors.ErrProductInactive
	}
	if err := product.ValidateApplication(amount, req.TermMonths); err != nil {
		s.logger.Warn("loan application out of bounds",
			zap.String("product_id", req.ProductID),
			zap.String("amount", req.Amount),
			zap.Int("term_months", req.TermMonths),
			zap.Error(err),
		)
		return nil, decimal.Zero, Quote{}, err
	}

	quote, err := ComputeInstallment(amount, req.TermMonths, product.AnnualRate, product.AdminFee, product.Method)
	if err != nil {
		return nil, decimal.Zero, Quote{}, err
	}
	return product, amount, quote, nil
}

func (s *service) Apply(ctx context.Context, companyID, actorID string, req ApplyRequest) (LoanResponse, error) {
	if req.EmployeeID == "" {
		req.EmployeeID = actorID
	}
	s.logger.Debug("loan application requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("product_id", req.ProductID),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LoanResponse{}, apperror.ErrInvalidCompanyID
	}
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidEmployeeID
	}

	belongs, err := s.repo.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("loan employee company check failed", zap.Error(err))
		return LoanResponse{}, err
	}
	if !belongs {
		return LoanResponse{}, loanerrors.ErrEmployeeNotInCompany
	}

	product, amount, quote, err := s.price(ctx, companyID, req.QuoteRequest)
	if err != nil {
		return LoanResponse{}, err
	}

	a := &Account{
		ID:                   uuid.New(),
		CompanyID:            companyUUID,
		EmployeeID:           employeeUUID,
		ProductID:            product.ID,
		Principal:            amount,
		TermMonths:           req.TermMonths,
		Method:               product.Method,
		AnnualRate:           product.AnnualRate,
		AdminFee:             product.AdminFee,
		InstallmentAmount:    quote.Installment,
		TotalLoanCost:        quote.TotalCost,
		TotalInterest:        quote.TotalInterest,
		OutstandingPrincipal: amount,
		OutstandingInterest:  quote.TotalInterest,
		OutstandingFee:       product.AdminFee,
		TotalPaid:            decimal.Zero,
		Purpose:              req.Purpose,
		Status:               StatusDraft,
		CreatedBy:            actor,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("loan application persist failed", zap.Error(err))
		return LoanResponse{}, err
	}
	a.Product = product

	s.logger.Info("loan application created",
		zap.String("loan_id", a.ID.String()),
		zap.String("installment", a.InstallmentAmount.StringFixed(2)),
	)
	return mapToResponse(*a), nil
}

func (s *service) Submit(ctx context.Context, companyID, actorID, id string) (LoanResponse, error) {
	a, err := s.transition(ctx, companyID, id, func(a *Account, now time.Time) error {
		if a.Status != StatusDraft {
			return loanerrors.ErrInvalidStatusTransition
		}
		if a.EmployeeID.String() != actorID && a.CreatedBy.String() != actorID {
			return loanerrors.ErrNotOwner
		}
		a.Status = StatusSubmitted
		a.SubmittedAt = &now
		return nil
	})
	if err != nil {
		return LoanResponse{}, err
	}

	s.notify(ctx, a, "Loan application submitted",
		fmt.Sprintf("Your loan application for %s is awaiting manager approval.", a.Principal.StringFixed(2)))
	return mapToResponse(*a), nil
}

// Approve advances the loan one stage along the approval chain.
func (s *service) Approve(ctx context.Context, companyID, actorID, id string, req ApproveRequest) (LoanResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidActorID
	}

	a, err := s.transition(ctx, companyID, id, func(a *Account, now time.Time) error {
		next, ok := approvalChain[a.Status]
		if !ok {
			return loanerrors.ErrInvalidStatusTransition
		}
		if a.EmployeeID == actor {
			return loanerrors.ErrSelfApproval
		}
		switch next {
		case StatusManagerApproved:
			a.ManagerApprovedBy, a.ManagerApprovedAt = &actor, &now
		case StatusHRApproved:
			a.HRApprovedBy, a.HRApprovedAt = &actor, &now
		case StatusFinanceApproved:
			a.FinanceApprovedBy, a.FinanceApprovedAt = &actor, &now
		}
		a.Status = next
		return nil
	})
	if err != nil {
		return LoanResponse{}, err
	}

	s.logger.Info("loan approved",
		zap.String("loan_id", id),
		zap.String("status", a.Status),
		zap.String("comments", req.Comments),
	)
	s.notify(ctx, a, "Loan "+a.Status, fmt.Sprintf("Your loan application is now %s.", a.Status))
	return mapToResponse(*a), nil
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id string, req RejectRequest) (LoanResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidActorID
	}
	if req.Reason == "" {
		return LoanResponse{}, loanerrors.ErrRejectionReasonRequired
	}

	a, err := s.transition(ctx, companyID, id, func(a *Account, now time.Time) error {
		if !rejectable[a.Status] {
			return loanerrors.ErrInvalidStatusTransition
		}
		a.RejectedAtStage = a.Status
		a.Status = StatusRejected
		a.RejectedBy = &actor
		a.RejectedAt = &now
		a.RejectionReason = req.Reason
		return nil
	})
	if err != nil {
		return LoanResponse{}, err
	}

	s.logger.Info("loan rejected", zap.String("loan_id", id), zap.String("stage", a.RejectedAtStage))
	s.notify(ctx, a, "Loan rejected", fmt.Sprintf("Your loan application was rejected: %s", req.Reason))
	return mapToResponse(*a), nil
}

// Disburse pays out a fully approved loan and opens it for repayment.
func (s *service) Disburse(ctx context.Context, companyID, actorID, id string, req DisburseRequest) (LoanResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidActorID
	}
	var date time.Time
	if req.DisbursementDate != "" {
		date, err = time.Parse(dateLayout, req.DisbursementDate)
		if err != nil {
			return LoanResponse{}, loanerrors.ErrInvalidDateFormat
		}
	}

	a, err := s.transition(ctx, companyID, id, func(a *Account, now time.Time) error {
		if a.Status != StatusFinanceApproved {
			return loanerrors.ErrInvalidStatusTransition
		}
		if date.IsZero() {
			date = now.Truncate(24 * time.Hour)
		}
		firstDue := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		maturity := firstDue.AddDate(0, a.TermMonths-1, 0)

		// Disbursed is transient: the stamps below record it and the loan
		// opens for repayment in the same write.
		a.DisbursedBy = &actor
		a.DisbursementDate = &date
		a.FirstInstallmentDue = &firstDue
		a.MaturityDate = &maturity
		a.Status = StatusActive
		return nil
	})
	if err != nil {
		return LoanResponse{}, err
	}

	s.logger.Info("loan disbursed", zap.String("loan_id", id), zap.String("date", date.Format(dateLayout)))
	s.notify(ctx, a, "Loan disbursed",
		fmt.Sprintf("Your loan of %s has been disbursed. Monthly installment: %s.", a.Principal.StringFixed(2), a.InstallmentAmount.StringFixed(2)))
	return mapToResponse(*a), nil
}

func (s *service) RecordRepayment(ctx context.Context, companyID, actorID, id string, req RepaymentRequest) (RepaymentResult, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return RepaymentResult{}, loanerrors.ErrInvalidActorID
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return RepaymentResult{}, loanerrors.ErrInvalidAmount
	}
	amount = money.Round2(amount)

	paidAt := s.now().Truncate(24 * time.Hour)
	if req.PaidAt != "" {
		paidAt, err = time.Parse(dateLayout, req.PaidAt)
		if err != nil {
			return RepaymentResult{}, loanerrors.ErrInvalidDateFormat
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("repayment begin tx failed", zap.Error(err))
		return RepaymentResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	a, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return RepaymentResult{}, mapRepositoryError(err, loanerrors.ErrLoanNotFound)
	}
	if a.Status != StatusActive {
		return RepaymentResult{}, loanerrors.ErrLoanNotActive
	}

	alloc, err := Allocate(*a, amount)
	if err != nil {
		s.logger.Warn("repayment rejected",
			zap.String("loan_id", id),
			zap.String("amount", amount.StringFixed(2)),
			zap.Error(err),
		)
		return RepaymentResult{}, err
	}

	rp := &Repayment{
		ID:            uuid.New(),
		CompanyID:     a.CompanyID,
		LoanID:        a.ID,
		Amount:        amount,
		PrincipalPart: alloc.Principal,
		InterestPart:  alloc.Interest,
		FeePart:       alloc.Fee,
		PaidAt:        paidAt,
		Reference:     req.Reference,
		RecordedBy:    actor,
	}
	if err := qtx.CreateRepayment(ctx, rp); err != nil {
		s.logger.Error("repayment persist failed", zap.Error(err))
		return RepaymentResult{}, err
	}

	paidOff := alloc.apply(a)
	if paidOff {
		a.Status = StatusPaidOff
	}
	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("repayment loan update failed", zap.Error(err))
		return RepaymentResult{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("repayment commit failed", zap.Error(err))
		return RepaymentResult{}, err
	}

	s.logger.Info("repayment recorded",
		zap.String("loan_id", id),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("outstanding_principal", a.OutstandingPrincipal.StringFixed(2)),
		zap.Bool("paid_off", paidOff),
	)
	if paidOff {
		s.notify(ctx, a, "Loan paid off", "Your loan has been fully repaid.")
	}
	return RepaymentResult{Repayment: mapRepaymentResponse(*rp), Loan: mapToResponse(*a)}, nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter ListFilter) ([]LoanResponse, error) {
	spec := query.Spec{Filter: map[string]any{}, Sort: filter.Sort}
	if filter.Status != "" {
		if !knownStatus(filter.Status) {
			return nil, loanerrors.ErrInvalidStatusFilter
		}
		spec.Filter["status"] = filter.Status
	}
	if filter.EmployeeID != "" {
		spec.Filter["employee_id"] = filter.EmployeeID
	}

	loans, err := s.repo.FindAll(ctx, companyID, spec)
	if err != nil {
		s.logger.Error("list loans failed", zap.Error(err))
		return nil, err
	}
	resp := make([]LoanResponse, len(loans))
	for i, a := range loans {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LoanResponse, error) {
	a, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LoanResponse{}, mapRepositoryError(err, loanerrors.ErrLoanNotFound)
	}
	return mapToResponse(*a), nil
}

func (s *service) ListRepayments(ctx context.Context, companyID, id string) ([]RepaymentResponse, error) {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return nil, mapRepositoryError(err, loanerrors.ErrLoanNotFound)
	}
	repayments, err := s.repo.FindRepayments(ctx, companyID, id)
	if err != nil {
		s.logger.Error("list repayments failed", zap.Error(err))
		return nil, err
	}
	resp := make([]RepaymentResponse, len(repayments))
	for i, r := range repayments {
		resp[i] = mapRepaymentResponse(r)
	}
	return resp, nil
}

// transition loads the loan inside a transaction, lets mutate change it and
// persists the result. mutate returning an error aborts without writing.
func (s *service) transition(ctx context.Context, companyID, id string, mutate func(a *Account, now time.Time) error) (*Account, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("loan transition begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	a, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err, loanerrors.ErrLoanNotFound)
	}

	from := a.Status
	if err := mutate(a, s.now()); err != nil {
		s.logger.Warn("loan transition rejected",
			zap.String("loan_id", id),
			zap.String("status", from),
			zap.Error(err),
		)
		return nil, err
	}
	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("loan transition persist failed", zap.Error(err))
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("loan transition commit failed", zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *service) notify(ctx context.Context, a *Account, title, body string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, notification.Message{
		CompanyID:     a.CompanyID.String(),
		RecipientID:   a.EmployeeID.String(),
		Title:         title,
		Body:          body,
		Type:          referenceType,
		ReferenceType: referenceType,
		ReferenceID:   a.ID.String(),
	})
}

func knownStatus(status string) bool {
	switch status {
	case StatusDraft, StatusSubmitted, StatusManagerApproved, StatusHRApproved, StatusFinanceApproved,
		StatusDisbursed, StatusActive, StatusPaidOff, StatusRejected:
		return true
	}
	return false
}
