package notificationerrors

import (
	"net/http"

	"go-ess/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrRecipientRequired = apperror.New(
		apperror.CodeUnauthorized,
		"employee context is required",
		http.StatusUnauthorized,
	)
)
