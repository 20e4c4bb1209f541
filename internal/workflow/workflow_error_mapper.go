package workflow

import (
	"errors"

	workflowerrors "go-ess/internal/workflow/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workflowerrors.ErrDefinitionNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_workflow_definition_name" {
		return workflowerrors.ErrDefinitionAlreadyExists
	}
	return err
}
