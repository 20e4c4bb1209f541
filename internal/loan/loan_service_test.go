package loan_test

import (
	"context"
	"testing"

	"go-ess/internal/loan"
	loanerrors "go-ess/internal/loan/errors"
	loanMock "go-ess/internal/loan/mock"
	"go-ess/internal/notification"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeNotifier struct {
	sent []notification.Message
}

func (f *fakeNotifier) Notify(_ context.Context, msg notification.Message) {
	f.sent = append(f.sent, msg)
}

type serviceDeps struct {
	sqlMock  sqlmock.Sqlmock
	repo     *loanMock.MockRepository
	notifier *fakeNotifier
	service  loan.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()
	repo := loanMock.NewMockRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()

	notifier := &fakeNotifier{}
	return &serviceDeps{
		sqlMock:  sqlMock,
		repo:     repo,
		notifier: notifier,
		service:  loan.NewService(db, repo, notifier),
	}
}

func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func flatProduct() *loan.Product {
	return &loan.Product{
		ID:            uuid.New(),
		Code:          "PERS",
		Name:          "Personal Loan",
		Method:        loan.MethodFlatRate,
		AnnualRate:    d("5"),
		AdminFee:      d("100"),
		MinAmount:     d("1000"),
		MaxAmount:     d("50000"),
		MinTermMonths: 3,
		MaxTermMonths: 24,
		IsActive:      true,
	}
}

func account(companyID string, employeeID uuid.UUID, status string) *loan.Account {
	return &loan.Account{
		ID:                   uuid.New(),
		CompanyID:            uuid.MustParse(companyID),
		EmployeeID:           employeeID,
		ProductID:            uuid.New(),
		Principal:            d("12000"),
		TermMonths:           12,
		Method:               loan.MethodFlatRate,
		AnnualRate:           d("5"),
		AdminFee:             d("100"),
		InstallmentAmount:    d("1058.33"),
		TotalLoanCost:        d("12700"),
		TotalInterest:        d("600"),
		OutstandingPrincipal: d("12000"),
		OutstandingInterest:  d("600"),
		OutstandingFee:       d("100"),
		Status:               status,
		CreatedBy:            employeeID,
	}
}

func TestService_Apply(t *testing.T) {
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("success flat rate draft", func(t *testing.T) {
		deps := setupServiceTest(t)
		product := flatProduct()

		deps.repo.EXPECT().EmployeeBelongsToCompany(gomock.Any(), companyID, actorID).Return(true, nil)
		deps.repo.EXPECT().FindProductByID(gomock.Any(), companyID, product.ID.String()).Return(product, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *loan.Account) error {
				assert.Equal(t, loan.StatusDraft, a.Status)
				assert.Equal(t, loan.MethodFlatRate, a.Method)
				assert.True(t, a.OutstandingPrincipal.Equal(d("12000")))
				assert.True(t, a.OutstandingInterest.Equal(d("600")))
				return nil
			})

		resp, err := deps.service.Apply(context.Background(), companyID, actorID, loan.ApplyRequest{
			QuoteRequest: loan.QuoteRequest{ProductID: product.ID.String(), Amount: "12000", TermMonths: 12},
			Purpose:      "car repair",
		})
		assert.NoError(t, err)
		assert.Equal(t, actorID, resp.EmployeeID)
		assert.Equal(t, "1058.33", resp.InstallmentAmount)
		assert.Equal(t, "12700.00", resp.TotalLoanCost)
		assert.Equal(t, "600.00", resp.TotalInterest)
		assert.Equal(t, "Personal Loan", resp.ProductName)
	})

	t.Run("negative amount above product maximum", func(t *testing.T) {
		deps := setupServiceTest(t)
		product := flatProduct()

		deps.repo.EXPECT().EmployeeBelongsToCompany(gomock.Any(), companyID, actorID).Return(true, nil)
		deps.repo.EXPECT().FindProductByID(gomock.Any(), companyID, product.ID.String()).Return(product, nil)

		_, err := deps.service.Apply(context.Background(), companyID, actorID, loan.ApplyRequest{
			QuoteRequest: loan.QuoteRequest{ProductID: product.ID.String(), Amount: "60000", TermMonths: 12},
		})
		if assert.Error(t, err) {
			assert.Equal(t, "amount exceeds maximum of 50000.00", err.Error())
		}
	})

	t.Run("negative inactive product", func(t *testing.T) {
		deps := setupServiceTest(t)
		product := flatProduct()
		product.IsActive = false

		deps.repo.EXPECT().EmployeeBelongsToCompany(gomock.Any(), companyID, actorID).Return(true, nil)
		deps.repo.EXPECT().FindProductByID(gomock.Any(), companyID, product.ID.String()).Return(product, nil)

		_, err := deps.service.Apply(context.Background(), companyID, actorID, loan.ApplyRequest{
			QuoteRequest: loan.QuoteRequest{ProductID: product.ID.String(), Amount: "5000", TermMonths: 6},
		})
		assert.ErrorIs(t, err, loanerrors.ErrProductInactive)
	})

	t.Run("negative employee outside company", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().EmployeeBelongsToCompany(gomock.Any(), companyID, actorID).Return(false, nil)

		_, err := deps.service.Apply(context.Background(), companyID, actorID, loan.ApplyRequest{
			QuoteRequest: loan.QuoteRequest{ProductID: uuid.New().String(), Amount: "5000", TermMonths: 6},
		})
		assert.ErrorIs(t, err, loanerrors.ErrEmployeeNotInCompany)
	})
}

func TestService_Quote(t *testing.T) {
	companyID := uuid.New().String()
	deps := setupServiceTest(t)
	product := flatProduct()
	deps.repo.EXPECT().FindProductByID(gomock.Any(), companyID, product.ID.String()).Return(product, nil)

	resp, err := deps.service.Quote(context.Background(), companyID, loan.QuoteRequest{
		ProductID: product.ID.String(), Amount: "12000", TermMonths: 12,
	})
	assert.NoError(t, err)
	assert.Equal(t, "1058.33", resp.Installment)
	assert.Equal(t, "12700.00", resp.TotalCost)
}

func TestService_SubmitAndApprovalChain(t *testing.T) {
	companyID := uuid.New().String()
	borrower := uuid.New()

	t.Run("success submit by borrower", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, true)
		a := account(companyID, borrower, loan.StatusDraft)

		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, a.ID.String()).Return(a, nil)
		deps.repo.EXPECT().Update(gomock.Any(), a).Return(nil)

		resp, err := deps.service.Submit(context.Background(), companyID, borrower.String(), a.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, loan.StatusSubmitted, resp.Status)
		assert.Len(t, deps.notifier.sent, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative submit by someone else", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, false)
		a := account(companyID, borrower, loan.StatusDraft)

		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, a.ID.String()).Return(a, nil)

		_, err := deps.service.Submit(context.Background(), companyID, uuid.New().String(), a.ID.String())
		assert.ErrorIs(t, err, loanerrors.ErrNotOwner)
	})

	t.Run("success each stage advances once", func(t *testing.T) {
		chain := []struct{ from, to string }{
			{loan.StatusSubmitted, loan.StatusManagerApproved},
			{loan.StatusManagerApproved, loan.StatusHRApproved},
			{loan.StatusHRApproved, loan.StatusFinanceApproved},
		}
		approver := uuid.New().String()
		for _, step := range chain {
			deps := setupServiceTest(t)
			expectTx(deps.sqlMock, true)
			a := account(companyID, borrower, step.from)

			deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, a.ID.String()).Return(a, nil)
			deps.repo.EXPECT().Update(gomock.Any(), a).Return(nil)

			resp, err := deps.service.Approve(context.Background(), companyID, approver, a.ID.String(), loan.ApproveRequest{})
			assert.NoError(t, err)
			assert.Equal(t, step.to, resp.Status)
			if assert.NotEmpty(t, resp.Approvals) {
				last := resp.Approvals[len(resp.Approvals)-1]
				assert.Equal(t, step.to, last.Stage)
				assert.Equal(t, approver, last.ApprovedBy)
			}
			if assert.Len(t, deps.notifier.sent, 1) {
				assert.Equal(t, borrower.String(), deps.notifier.sent[0].RecipientID)
			}
		}
	})

	t.Run("negative self approval", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, false)
		a := account(companyID, borrower, loan.StatusSubmitted)

		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, a.ID.String()).Return(a, nil)

		_, err := deps.service.Approve(context.Background(), companyID, borrower.String(), a.ID.String(), loan.ApproveRequest{})
		assert.ErrorIs(t, err, loanerrors.ErrSelfApproval)
	})

	t.Run("negative approve after finance", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, false)
		a := account(companyID, borrower, loan.StatusFinanceApproved)

		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, a.ID.String()).Return(a, nil)

		_, err := deps.service.Approve(context.Background(), companyID, uuid.New().String(), a.ID.String(), loan.ApproveRequest{})
		assert.ErrorIs(t, err, loanerrors.ErrInvalidStatusTransition)
		assert.Empty(t, deps.notifier.sent)
	})

	t.Run("negative loan not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, false)
		id := uuid.New().String()

		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Approve(context.Background(), companyID, uuid.New().String(), id, loan.ApproveRequest{})
		assert.ErrorIs(t, err, loanerrors.ErrLoanNotFound)
	})
}

func TestService_Reject(t *testing.T) {
	companyID := uuid.New().String()
	borrower := uuid.New()
	approver := uuid.New().String()

	t.Run("success records stage", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, true)
		a := account(companyID, borrower, loan.StatusManagerApproved)

		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, a.ID.String()).Return(a, nil)
		deps.repo.EXPECT().Update(gomock.Any(), a).Return(nil)

		resp, err := deps.service.Reject(context.Background(), companyID, approver, a.ID.String(), loan.RejectRequest{Reason: "exceeds salary ratio"})
		assert.NoError(t, err)
		assert.Equal(t, loan.StatusRejected, resp.Status)
		assert.Equal(t, loan.StatusManagerApproved, resp.RejectedAtStage)
		assert.Equal(t, "exceeds salary ratio", resp.RejectionReason)
		if assert.Len(t, deps.notifier.sent, 1) {
			assert.Contains(t, deps.notifier.sent[0].Body, "exceeds salary ratio")
		}
	})

	t.Run("negative reason required", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Reject(context.Background(), companyID, approver, uuid.New().String(), loan.RejectRequest{})
		assert.ErrorIs(t, err, loanerrors.ErrRejectionReasonRequired)
	})

	t.Run("negative after disbursement", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, false)
		a := account(companyID, borrower, loan.StatusActive)

		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, a.ID.String()).Return(a, nil)

		_, err := deps.service.Reject(context.Background(), companyID, approver, a.ID.String(), loan.RejectRequest{Reason: "late"})
		assert.ErrorIs(t, err, loanerrors.ErrInvalidStatusTransition)
	})
}

func TestService_Disburse(t *testing.T) {
	companyID := uuid.New().String()
	borrower := uuid.New()

	t.Run("success opens schedule", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, true)
		a := account(companyID, borrower, loan.StatusFinanceApproved)

		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, a.ID.String()).Return(a, nil)
		deps.repo.EXPECT().Update(gomock.Any(), a).Return(nil)

		resp, err := deps.service.Disburse(context.Background(), companyID, uuid.New().String(), a.ID.String(), loan.DisburseRequest{DisbursementDate: "2026-03-15"})
		assert.NoError(t, err)
		assert.Equal(t, loan.StatusActive, resp.Status)
		assert.Equal(t, "2026-03-15", *resp.DisbursementDate)
		assert.Equal(t, "2026-04-01", *resp.FirstInstallmentDue)
		assert.Equal(t, "2027-03-01", *resp.MaturityDate)
		assert.Len(t, deps.notifier.sent, 1)
	})

	t.Run("negative not finance approved", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, false)
		a := account(companyID, borrower, loan.StatusHRApproved)

		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, a.ID.String()).Return(a, nil)

		_, err := deps.service.Disburse(context.Background(), companyID, uuid.New().String(), a.ID.String(), loan.DisburseRequest{})
		assert.ErrorIs(t, err, loanerrors.ErrInvalidStatusTransition)
	})

	t.Run("negative bad date", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Disburse(context.Background(), companyID, uuid.New().String(), uuid.New().String(), loan.DisburseRequest{DisbursementDate: "15/03/2026"})
		assert.ErrorIs(t, err, loanerrors.ErrInvalidDateFormat)
	})
}

func TestService_RecordRepayment(t *testing.T) {
	companyID := uuid.New().String()
	borrower := uuid.New()
	clerk := uuid.New().String()

	t.Run("success splits installment", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, true)
		a := account(companyID, borrower, loan.StatusActive)

		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), companyID, a.ID.String()).Return(a, nil)
		deps.repo.EXPECT().CreateRepayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *loan.Repayment) error {
				assert.Equal(t, a.ID, r.LoanID)
				return nil
			})
		deps.repo.EXPECT().Update(gomock.Any(), a).Return(nil)

		res, err := deps.service.RecordRepayment(context.Background(), companyID, clerk, a.ID.String(), loan.RepaymentRequest{Amount: "1058.33", PaidAt: "2026-04-01"})
		assert.NoError(t, err)
		assert.Equal(t, "50.00", res.Repayment.InterestPart)
		assert.Equal(t, "8.33", res.Repayment.FeePart)
		assert.Equal(t, "1000.00", res.Repayment.PrincipalPart)
		assert.Equal(t, "2026-04-01", res.Repayment.PaidAt)
		assert.Equal(t, "11000.00", res.Loan.OutstandingPrincipal)
		assert.Equal(t, "550.00", res.Loan.OutstandingInterest)
		assert.Equal(t, "1058.33", res.Loan.TotalPaid)
		assert.Equal(t, 1, res.Loan.InstallmentsPaid)
		assert.Equal(t, loan.StatusActive, res.Loan.Status)
		assert.Empty(t, deps.notifier.sent)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success final payment pays off", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, true)
		a := account(companyID, borrower, loan.StatusActive)
		a.Method = loan.MethodInterestFree
		a.TotalInterest = decimal.Zero
		a.OutstandingInterest = decimal.Zero
		a.OutstandingFee = decimal.Zero
		a.OutstandingPrincipal = d("500")

		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), companyID, a.ID.String()).Return(a, nil)
		deps.repo.EXPECT().CreateRepayment(gomock.Any(), gomock.Any()).Return(nil)
		deps.repo.EXPECT().Update(gomock.Any(), a).Return(nil)

		res, err := deps.service.RecordRepayment(context.Background(), companyID, clerk, a.ID.String(), loan.RepaymentRequest{Amount: "500"})
		assert.NoError(t, err)
		assert.Equal(t, loan.StatusPaidOff, res.Loan.Status)
		assert.Equal(t, "0.00", res.Loan.OutstandingPrincipal)
		if assert.Len(t, deps.notifier.sent, 1) {
			assert.Equal(t, "Loan paid off", deps.notifier.sent[0].Title)
		}
	})

	t.Run("negative loan not active", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, false)
		a := account(companyID, borrower, loan.StatusPaidOff)

		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), companyID, a.ID.String()).Return(a, nil)

		_, err := deps.service.RecordRepayment(context.Background(), companyID, clerk, a.ID.String(), loan.RepaymentRequest{Amount: "100"})
		assert.ErrorIs(t, err, loanerrors.ErrLoanNotActive)
	})

	t.Run("negative exceeds balance", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, false)
		a := account(companyID, borrower, loan.StatusActive)

		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), companyID, a.ID.String()).Return(a, nil)

		_, err := deps.service.RecordRepayment(context.Background(), companyID, clerk, a.ID.String(), loan.RepaymentRequest{Amount: "20000"})
		assert.ErrorIs(t, err, loanerrors.ErrRepaymentExceedsBalance)
	})

	t.Run("negative invalid amount", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.RecordRepayment(context.Background(), companyID, clerk, uuid.New().String(), loan.RepaymentRequest{Amount: "-5"})
		assert.ErrorIs(t, err, loanerrors.ErrInvalidAmount)
	})
}

func TestService_GetAll(t *testing.T) {
	companyID := uuid.New().String()

	t.Run("success filters by status", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(gomock.Any(), companyID, gomock.Any()).
			Return([]loan.Account{*account(companyID, uuid.New(), loan.StatusActive)}, nil)

		resp, err := deps.service.GetAll(context.Background(), companyID, loan.ListFilter{Status: loan.StatusActive})
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("negative unknown status", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetAll(context.Background(), companyID, loan.ListFilter{Status: "Closed"})
		assert.ErrorIs(t, err, loanerrors.ErrInvalidStatusFilter)
	})

	t.Run("success repayments ledger", func(t *testing.T) {
		deps := setupServiceTest(t)
		a := account(companyID, uuid.New(), loan.StatusActive)
		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, a.ID.String()).Return(a, nil)
		deps.repo.EXPECT().FindRepayments(gomock.Any(), companyID, a.ID.String()).
			Return([]loan.Repayment{{ID: uuid.New(), LoanID: a.ID, Amount: d("1058.33")}}, nil)

		resp, err := deps.service.ListRepayments(context.Background(), companyID, a.ID.String())
		assert.NoError(t, err)
		if assert.Len(t, resp, 1) {
			assert.Equal(t, "1058.33", resp[0].Amount)
		}
	})
}
