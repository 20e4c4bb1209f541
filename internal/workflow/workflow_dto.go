package workflow

import "time"

type StepRequest struct {
	ApproverType     string `json:"approver_type" binding:"required,oneof='Direct Manager' 'Department Head' HR Finance 'Specific User'"`
	ApproverID       string `json:"approver_id" binding:"omitempty,uuid"`
	IsMandatory      bool   `json:"is_mandatory"`
	SLAHours         int    `json:"sla_hours" binding:"min=0"`
	SendNotification bool   `json:"send_notification"`
}

func (r StepRequest) toStep() Step {
	return Step{
		ApproverType:     r.ApproverType,
		ApproverID:       r.ApproverID,
		IsMandatory:      r.IsMandatory,
		SLAHours:         r.SLAHours,
		SendNotification: r.SendNotification,
	}
}

type CreateDefinitionRequest struct {
	Name                 string        `json:"name" binding:"required"`
	Module               string        `json:"module" binding:"omitempty,oneof=leave"`
	Description          string        `json:"description"`
	Steps                []StepRequest `json:"steps" binding:"dive"`
	SLAHours             int           `json:"sla_hours" binding:"min=0"`
	EscalationEnabled    bool          `json:"escalation_enabled"`
	EscalationAfterHours int           `json:"escalation_after_hours" binding:"min=0"`
	IsDefault            bool          `json:"is_default"`
}

type UpdateDefinitionRequest struct {
	Name                 string        `json:"name" binding:"required"`
	Description          string        `json:"description"`
	Steps                []StepRequest `json:"steps" binding:"dive"`
	SLAHours             int           `json:"sla_hours" binding:"min=0"`
	EscalationEnabled    bool          `json:"escalation_enabled"`
	EscalationAfterHours int           `json:"escalation_after_hours" binding:"min=0"`
	IsDefault            bool          `json:"is_default"`
	IsActive             *bool         `json:"is_active"`
}

type MoveStepRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

type DefinitionResponse struct {
	ID                   string `json:"id"`
	CompanyID            string `json:"company_id"`
	Name                 string `json:"name"`
	Module               string `json:"module"`
	Description          string `json:"description,omitempty"`
	Steps                []Step `json:"steps"`
	SLAHours             int    `json:"sla_hours"`
	EscalationEnabled    bool   `json:"escalation_enabled"`
	EscalationAfterHours int    `json:"escalation_after_hours"`
	IsDefault            bool   `json:"is_default"`
	IsActive             bool   `json:"is_active"`
}

type ActionResponse struct {
	ID           string `json:"id"`
	StepNumber   int    `json:"step_number"`
	ApproverID   string `json:"approver_id"`
	ApproverType string `json:"approver_type"`
	Action       string `json:"action"`
	Comments     string `json:"comments,omitempty"`
	ActedAt      string `json:"acted_at"`
}

func MapActionResponse(a ApprovalAction) ActionResponse {
	return ActionResponse{
		ID:           a.ID.String(),
		StepNumber:   a.StepNumber,
		ApproverID:   a.ApproverID.String(),
		ApproverType: a.ApproverType,
		Action:       a.Action,
		Comments:     a.Comments,
		ActedAt:      a.ActedAt.Format(time.RFC3339),
	}
}
