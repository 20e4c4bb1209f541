package workflow

import (
	"strings"
	"time"

	workflowerrors "go-ess/internal/workflow/errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Actor is the person acting on a request and the approver role they act as.
type Actor struct {
	ID           uuid.UUID
	ApproverType string
}

// Transition describes what an approve or reject call changed.
type Transition struct {
	// Action is nil on the legacy two-level path.
	Action *ApprovalAction
	// Next is the step now awaiting approval, nil when the request finished.
	Next *Step
	// NextRole is the approver role now awaiting action, "" when finished.
	NextRole  string
	Completed bool
}

// Submit moves a draft request into approval. A nil definition or one with
// no steps starts the legacy manager then HR chain and returns no instance.
func Submit(state *State, def *Definition, now time.Time) (*Instance, error) {
	if !state.IsDraft() {
		return nil, workflowerrors.ErrAlreadySubmitted
	}

	steps := def.StepList()
	if len(steps) == 0 {
		state.Status = StatusPendingManager
		state.ApprovalLevel = legacyManagerLevel
		state.CurrentApproverRole = ApproverDirectManager
		state.WorkflowID = nil
		return nil, nil
	}

	first := steps[0]
	workflowID := def.ID
	state.Status = StatusPending
	state.ApprovalLevel = 1
	state.CurrentApproverRole = first.ApproverType
	state.WorkflowID = &workflowID

	return &Instance{
		ID:          uuid.New(),
		CompanyID:   def.CompanyID,
		WorkflowID:  def.ID,
		Module:      def.Module,
		CurrentStep: 1,
		Steps:       datatypes.NewJSONType(steps),
		Status:      InstanceInProgress,
		SLADeadline: deadline(now, first.SLAHours),
		StartedAt:   now,
	}, nil
}

// Approve records the current approver's decision and advances the request
// one level, completing it after the last step. The instance's submit-time
// steps take precedence over def, so later definition edits do not affect
// requests already in flight.
func Approve(state *State, inst *Instance, def *Definition, actor Actor, comments string, now time.Time) (Transition, error) {
	if err := checkActionable(state, actor); err != nil {
		return Transition{}, err
	}

	if state.WorkflowID == nil {
		return approveLegacy(state, actor, now)
	}

	steps := StepsFor(inst, def)
	if inst == nil || len(steps) == 0 {
		return Transition{}, workflowerrors.ErrWorkflowUnavailable
	}
	current := state.ApprovalLevel
	if current < 1 || current > len(steps) {
		return Transition{}, workflowerrors.ErrInvalidApprovalLevel
	}

	step := steps[current-1]
	action := newAction(inst, step, actor, ActionApproved, comments, now)

	if step.ApproverType == ApproverDirectManager && state.ManagerApprovedBy == nil {
		state.ManagerApprovedBy = &actor.ID
		state.ManagerApprovedDate = &now
	}

	if current+1 > len(steps) {
		state.Status = StatusApproved
		state.ApprovalLevel = current + 1
		state.CurrentApproverRole = ""
		state.FinalApprovedBy = &actor.ID
		state.FinalApprovedDate = &now

		inst.Status = InstanceApproved
		inst.SLADeadline = nil
		inst.CompletedAt = &now
		return Transition{Action: action, Completed: true}, nil
	}

	next := steps[current]
	state.ApprovalLevel = current + 1
	state.CurrentApproverRole = next.ApproverType

	inst.CurrentStep = current + 1
	inst.SLADeadline = deadline(now, next.SLAHours)

	return Transition{Action: action, Next: &next, NextRole: next.ApproverType}, nil
}

func approveLegacy(state *State, actor Actor, now time.Time) (Transition, error) {
	switch state.Status {
	case StatusPendingManager:
		state.Status = StatusPendingHR
		state.ApprovalLevel = legacyHRLevel
		state.CurrentApproverRole = ApproverHR
		state.ManagerApprovedBy = &actor.ID
		state.ManagerApprovedDate = &now
		return Transition{NextRole: ApproverHR}, nil
	case StatusPendingHR:
		state.Status = StatusApproved
		state.ApprovalLevel = legacyCompletedLevel
		state.CurrentApproverRole = ""
		state.FinalApprovedBy = &actor.ID
		state.FinalApprovedDate = &now
		return Transition{Completed: true}, nil
	}
	return Transition{}, workflowerrors.ErrInvalidApprovalLevel
}

// Reject ends the request at its current stage.
func Reject(state *State, inst *Instance, def *Definition, actor Actor, reason string, now time.Time) (Transition, error) {
	if err := checkActionable(state, actor); err != nil {
		return Transition{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Transition{}, workflowerrors.ErrRejectionReasonRequired
	}

	var action *ApprovalAction
	if state.WorkflowID != nil {
		steps := StepsFor(inst, def)
		if inst == nil || len(steps) == 0 {
			return Transition{}, workflowerrors.ErrWorkflowUnavailable
		}
		if state.ApprovalLevel < 1 || state.ApprovalLevel > len(steps) {
			return Transition{}, workflowerrors.ErrInvalidApprovalLevel
		}
		action = newAction(inst, steps[state.ApprovalLevel-1], actor, ActionRejected, reason, now)

		inst.Status = InstanceRejected
		inst.SLADeadline = nil
		inst.CompletedAt = &now
	}

	state.RejectedAtStage = state.CurrentApproverRole
	state.Status = StatusRejected
	state.RejectionReason = reason
	state.RejectedBy = &actor.ID
	state.RejectionDate = &now
	state.CurrentApproverRole = ""

	return Transition{Action: action, Completed: true}, nil
}

// Cancel withdraws a draft or pending request.
func Cancel(state *State, inst *Instance, now time.Time) error {
	if state.IsTerminal() {
		return workflowerrors.ErrTerminalState
	}
	state.Status = StatusCancelled
	state.CurrentApproverRole = ""
	if inst != nil {
		inst.Status = InstanceCancelled
		inst.SLADeadline = nil
		inst.CompletedAt = &now
	}
	return nil
}

func checkActionable(state *State, actor Actor) error {
	if state.IsTerminal() {
		return workflowerrors.ErrTerminalState
	}
	if state.IsDraft() {
		return workflowerrors.ErrNotSubmitted
	}
	if actor.ApproverType != state.CurrentApproverRole {
		return workflowerrors.ErrApproverMismatch
	}
	return nil
}

func newAction(inst *Instance, step Step, actor Actor, verdict, comments string, now time.Time) *ApprovalAction {
	return &ApprovalAction{
		ID:           uuid.New(),
		CompanyID:    inst.CompanyID,
		InstanceID:   inst.ID,
		RequestID:    inst.RequestID,
		StepNumber:   step.StepNumber,
		ApproverID:   actor.ID,
		ApproverType: step.ApproverType,
		Action:       verdict,
		Comments:     comments,
		ActedAt:      now,
	}
}

func deadline(now time.Time, slaHours int) *time.Time {
	if slaHours <= 0 {
		return nil
	}
	d := now.Add(time.Duration(slaHours) * time.Hour)
	return &d
}
