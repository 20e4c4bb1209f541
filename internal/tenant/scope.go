package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company. table qualifies the column when
// the query joins other company-scoped tables.
func Scope(companyID string, table ...string) func(db *gorm.DB) *gorm.DB {
	col := "company_id"
	if len(table) > 0 && table[0] != "" {
		col = table[0] + ".company_id"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(col+" = ?", companyID)
	}
}

// Employee restricts a company-scoped query further to one employee.
func Employee(companyID, employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Scopes(Scope(companyID)).Where("employee_id = ?", employeeID)
	}
}
