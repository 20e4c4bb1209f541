package accrualerrors

import (
	"net/http"

	"go-ess/internal/shared/apperror"
)

var (
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"year and month must describe a valid calendar month",
		http.StatusBadRequest,
	)
	ErrRunInProgress = apperror.New(
		apperror.CodeConflict,
		"accruals for this month are already being posted",
		http.StatusConflict,
	)
)
