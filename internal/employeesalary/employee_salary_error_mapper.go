package employeesalary

import (
	"errors"

	employeesalaryerrors "go-ess/internal/employeesalary/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeesalaryerrors.ErrSalaryNotFound
	}
	if IsDuplicateRevision(err) {
		return employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists
	}
	return err
}

// IsDuplicateRevision reports a second revision on the same effective date.
func IsDuplicateRevision(err error) bool {
	if errors.Is(err, employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_salary_effective"
}
