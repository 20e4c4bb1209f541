package workflowerrors

import (
	"net/http"

	"go-ess/internal/shared/apperror"
)

var (
	ErrDefinitionNotFound = apperror.New(
		apperror.CodeNotFound,
		"workflow definition not found",
		http.StatusNotFound,
	)
	ErrDefinitionAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"workflow definition name already exists",
		http.StatusConflict,
	)
	ErrInstanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"workflow instance not found",
		http.StatusNotFound,
	)
	ErrWorkflowUnavailable = apperror.New(
		apperror.CodeInvalidState,
		"workflow definition or instance for this request is missing",
		http.StatusConflict,
	)
	ErrAlreadySubmitted = apperror.New(
		apperror.CodeInvalidState,
		"request has already been submitted",
		http.StatusBadRequest,
	)
	ErrNotSubmitted = apperror.New(
		apperror.CodeInvalidState,
		"request has not been submitted for approval",
		http.StatusBadRequest,
	)
	ErrTerminalState = apperror.New(
		apperror.CodeInvalidState,
		"request is already in a final state",
		http.StatusBadRequest,
	)
	ErrApproverMismatch = apperror.New(
		apperror.CodeForbidden,
		"request is not awaiting this approver",
		http.StatusForbidden,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason is required",
		http.StatusBadRequest,
	)
	ErrInvalidApprovalLevel = apperror.New(
		apperror.CodeInvalidState,
		"approval level does not match the workflow steps",
		http.StatusConflict,
	)
	ErrInvalidApproverType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid approver type",
		http.StatusBadRequest,
	)
	ErrStepNotFound = apperror.New(
		apperror.CodeNotFound,
		"workflow step not found",
		http.StatusNotFound,
	)
	ErrStepsNotContiguous = apperror.New(
		apperror.CodeInvalidInput,
		"step numbers must run from 1 without gaps",
		http.StatusBadRequest,
	)
	ErrNegativeSLA = apperror.New(
		apperror.CodeInvalidInput,
		"sla hours cannot be negative",
		http.StatusBadRequest,
	)
	ErrApproverIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"approver_id is required for a Specific User step",
		http.StatusBadRequest,
	)
	ErrInvalidMoveDirection = apperror.New(
		apperror.CodeInvalidInput,
		"direction must be up or down",
		http.StatusBadRequest,
	)
	ErrStepMoveOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"step cannot move past the end of the list",
		http.StatusBadRequest,
	)
	ErrInvalidDefinitionFile = apperror.New(
		apperror.CodeInvalidInput,
		"workflow definition file is invalid",
		http.StatusBadRequest,
	)
)
