package workflow

import (
	"fmt"
	"os"

	"go-ess/internal/shared/apperror"
	workflowerrors "go-ess/internal/workflow/errors"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

// Seed is one workflow definition as written in a YAML seed file.
type Seed struct {
	Name                 string `yaml:"name"`
	Module               string `yaml:"module"`
	Description          string `yaml:"description"`
	SLAHours             int    `yaml:"sla_hours"`
	EscalationEnabled    bool   `yaml:"escalation_enabled"`
	EscalationAfterHours int    `yaml:"escalation_after_hours"`
	IsDefault            bool   `yaml:"is_default"`
	Steps                []Step `yaml:"steps"`
}

type seedFile struct {
	Workflows []Seed `yaml:"workflows"`
}

// ParseSeeds decodes a seed document of the form:
//
//	workflows:
//	  - name: Standard leave
//	    module: leave
//	    steps:
//	      - step_number: 1
//	        approver_type: Direct Manager
//	        sla_hours: 24
func ParseSeeds(data []byte) ([]Seed, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, apperror.Wrap(err, workflowerrors.ErrInvalidDefinitionFile)
	}
	if len(f.Workflows) == 0 {
		return nil, workflowerrors.ErrInvalidDefinitionFile
	}
	return f.Workflows, nil
}

func LoadSeeds(path string) ([]Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workflow seeds %s: %w", path, err)
	}
	return ParseSeeds(data)
}

// Definition builds a validated, company-scoped definition from the seed.
// Step numbers are kept as written so gaps are reported, not repaired.
func (s Seed) Definition(companyID uuid.UUID) (*Definition, error) {
	module := s.Module
	if module == "" {
		module = ModuleLeave
	}
	def := &Definition{
		ID:                   uuid.New(),
		CompanyID:            companyID,
		Name:                 s.Name,
		Module:               module,
		Description:          s.Description,
		Steps:                datatypes.NewJSONType(s.Steps),
		SLAHours:             s.SLAHours,
		EscalationEnabled:    s.EscalationEnabled,
		EscalationAfterHours: s.EscalationAfterHours,
		IsDefault:            s.IsDefault,
		IsActive:             true,
	}
	if def.Name == "" {
		return nil, workflowerrors.ErrInvalidDefinitionFile
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}
