package workflow

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ApproverDirectManager  = "Direct Manager"
	ApproverDepartmentHead = "Department Head"
	ApproverHR             = "HR"
	ApproverFinance        = "Finance"
	ApproverSpecificUser   = "Specific User"
)

// Request statuses. Approved, Rejected and Cancelled are final.
const (
	StatusDraft          = "Draft"
	StatusPendingManager = "Pending Manager Approval"
	StatusPendingHR      = "Pending HR Approval"
	StatusPending        = "Pending"
	StatusApproved       = "Approved"
	StatusRejected       = "Rejected"
	StatusCancelled      = "Cancelled"
)

const ModuleLeave = "leave"

// Two-level chain used when no definition with steps applies.
const (
	legacyManagerLevel   = 1
	legacyHRLevel        = 2
	legacyCompletedLevel = 3
)

const (
	InstanceInProgress = "In Progress"
	InstanceApproved   = "Approved"
	InstanceRejected   = "Rejected"
	InstanceCancelled  = "Cancelled"
)

const (
	ActionApproved = "Approved"
	ActionRejected = "Rejected"
)

var approverTypes = map[string]bool{
	ApproverDirectManager:  true,
	ApproverDepartmentHead: true,
	ApproverHR:             true,
	ApproverFinance:        true,
	ApproverSpecificUser:   true,
}

func IsApproverType(v string) bool {
	return approverTypes[v]
}

type Step struct {
	StepNumber       int    `json:"step_number" yaml:"step_number"`
	ApproverType     string `json:"approver_type" yaml:"approver_type"`
	ApproverID       string `json:"approver_id,omitempty" yaml:"approver_id,omitempty"`
	IsMandatory      bool   `json:"is_mandatory" yaml:"is_mandatory"`
	SLAHours         int    `json:"sla_hours" yaml:"sla_hours"`
	SendNotification bool   `json:"send_notification" yaml:"send_notification"`
}

type Definition struct {
	ID                   uuid.UUID                  `gorm:"type:uuid;primaryKey"`
	CompanyID            uuid.UUID                  `gorm:"type:uuid;not null;index:idx_workflow_definitions_company_module"`
	Name                 string                     `gorm:"size:150;not null"`
	Module               string                     `gorm:"size:30;not null;default:'leave';index:idx_workflow_definitions_company_module"`
	Description          string                     `gorm:"type:text"`
	Steps                datatypes.JSONType[[]Step] `gorm:"type:jsonb;not null"`
	SLAHours             int                        `gorm:"not null;default:0"`
	EscalationEnabled    bool                       `gorm:"not null;default:false"`
	EscalationAfterHours int                        `gorm:"not null;default:0"`
	IsDefault            bool                       `gorm:"not null;default:false"`
	IsActive             bool                       `gorm:"not null;default:true"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (Definition) TableName() string { return "workflow_definitions" }

// StepList returns a copy of the ordered steps.
func (d *Definition) StepList() []Step {
	if d == nil {
		return nil
	}
	src := d.Steps.Data()
	steps := make([]Step, len(src))
	copy(steps, src)
	return steps
}

func (d *Definition) SetSteps(steps []Step) {
	d.Steps = datatypes.NewJSONType(Renumber(steps))
}

// Instance tracks one request moving through a definition's steps.
type Instance struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null"`
	WorkflowID  uuid.UUID  `gorm:"type:uuid;not null"`
	Module      string     `gorm:"size:30;not null;uniqueIndex:uq_workflow_instance_request"`
	RequestID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_workflow_instance_request"`
	CurrentStep int        `gorm:"not null"`
	// Steps is the definition's step list as it stood at submit time.
	Steps       datatypes.JSONType[[]Step] `gorm:"type:jsonb"`
	Status      string                     `gorm:"size:20;not null"`
	SLADeadline *time.Time                 `gorm:"column:sla_deadline"`
	StartedAt   time.Time                  `gorm:"not null"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Instance) TableName() string { return "workflow_instances" }

// StepsFor returns the steps a request runs on: the instance's submit-time
// copy, or the live definition for instances stored without one.
func StepsFor(inst *Instance, def *Definition) []Step {
	if inst != nil {
		if src := inst.Steps.Data(); len(src) > 0 {
			steps := make([]Step, len(src))
			copy(steps, src)
			return steps
		}
	}
	return def.StepList()
}

// ApprovalAction is an append-only audit entry.
type ApprovalAction struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null"`
	InstanceID   uuid.UUID `gorm:"type:uuid;not null;index"`
	RequestID    uuid.UUID `gorm:"type:uuid;not null;index"`
	StepNumber   int       `gorm:"not null"`
	ApproverID   uuid.UUID `gorm:"type:uuid;not null"`
	ApproverType string    `gorm:"size:30;not null"`
	Action       string    `gorm:"size:20;not null"`
	Comments     string    `gorm:"type:text"`
	ActedAt      time.Time `gorm:"not null"`
}

func (ApprovalAction) TableName() string { return "approval_actions" }

// State is the approval bookkeeping embedded into a request row.
type State struct {
	Status              string     `gorm:"size:40;not null;default:'Draft'"`
	ApprovalLevel       int        `gorm:"not null;default:0"`
	CurrentApproverRole string     `gorm:"size:30"`
	WorkflowID          *uuid.UUID `gorm:"type:uuid"`
	RejectionReason     string     `gorm:"type:text"`
	RejectedAtStage     string     `gorm:"size:30"`
	RejectedBy          *uuid.UUID `gorm:"type:uuid"`
	RejectionDate       *time.Time
	ManagerApprovedBy   *uuid.UUID `gorm:"type:uuid"`
	ManagerApprovedDate *time.Time
	FinalApprovedBy     *uuid.UUID `gorm:"type:uuid"`
	FinalApprovedDate   *time.Time
}

func (s State) IsTerminal() bool {
	switch s.Status {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func (s State) IsDraft() bool {
	return s.Status == "" || s.Status == StatusDraft
}

// IsAwaitingApproval reports a submitted, not yet final request.
func (s State) IsAwaitingApproval() bool {
	return !s.IsDraft() && !s.IsTerminal()
}
