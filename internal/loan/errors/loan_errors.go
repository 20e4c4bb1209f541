package loanerrors

import (
	"net/http"

	"go-ess/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a positive number",
		http.StatusBadRequest,
	)
	ErrInvalidTerm = apperror.New(
		apperror.CodeInvalidInput,
		"term must be at least one month",
		http.StatusBadRequest,
	)
	ErrInvalidRate = apperror.New(
		apperror.CodeInvalidInput,
		"annual rate and admin fee must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidMethod = apperror.New(
		apperror.CodeInvalidInput,
		"unknown interest method",
		http.StatusBadRequest,
	)
	ErrInvalidProductBounds = apperror.New(
		apperror.CodeInvalidInput,
		"product minimums must not exceed maximums",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid loan status filter",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason is required",
		http.StatusBadRequest,
	)
	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"loan product not found",
		http.StatusNotFound,
	)
	ErrProductInactive = apperror.New(
		apperror.CodeInvalidState,
		"loan product is not active",
		http.StatusUnprocessableEntity,
	)
	ErrProductCodeExists = apperror.New(
		apperror.CodeConflict,
		"loan product code already exists",
		http.StatusConflict,
	)
	ErrLoanNotFound = apperror.New(
		apperror.CodeNotFound,
		"loan not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the borrower or applicant can submit this loan",
		http.StatusForbidden,
	)
	ErrSelfApproval = apperror.New(
		apperror.CodeForbidden,
		"borrower cannot approve own loan",
		http.StatusForbidden,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"loan status does not allow this action",
		http.StatusConflict,
	)
	ErrLoanNotActive = apperror.New(
		apperror.CodeInvalidState,
		"repayments can only be recorded on active loans",
		http.StatusConflict,
	)
	ErrRepaymentExceedsBalance = apperror.New(
		apperror.CodeInvalidInput,
		"repayment exceeds outstanding balance",
		http.StatusBadRequest,
	)
)
