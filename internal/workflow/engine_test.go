package workflow_test

import (
	"testing"
	"time"

	"go-ess/internal/workflow"
	workflowerrors "go-ess/internal/workflow/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newDefinition(types ...string) *workflow.Definition {
	def := &workflow.Definition{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Name:      "test",
		Module:    workflow.ModuleLeave,
		IsActive:  true,
	}
	steps := make([]workflow.Step, len(types))
	for i, tp := range types {
		steps[i] = workflow.Step{ApproverType: tp, SLAHours: 24}
	}
	def.SetSteps(steps)
	return def
}

func submitted(t *testing.T, def *workflow.Definition) (*workflow.State, *workflow.Instance) {
	t.Helper()
	state := &workflow.State{Status: workflow.StatusDraft}
	inst, err := workflow.Submit(state, def, testNow)
	assert.NoError(t, err)
	if inst != nil {
		inst.RequestID = uuid.New()
	}
	return state, inst
}

func TestSubmit(t *testing.T) {
	t.Run("success workflow path", func(t *testing.T) {
		def := newDefinition(workflow.ApproverDirectManager, workflow.ApproverHR)
		state, inst := submitted(t, def)

		assert.Equal(t, workflow.StatusPending, state.Status)
		assert.Equal(t, 1, state.ApprovalLevel)
		assert.Equal(t, workflow.ApproverDirectManager, state.CurrentApproverRole)
		assert.Equal(t, def.ID, *state.WorkflowID)

		assert.NotNil(t, inst)
		assert.Equal(t, 1, inst.CurrentStep)
		assert.Equal(t, workflow.InstanceInProgress, inst.Status)
		assert.Equal(t, testNow.Add(24*time.Hour), *inst.SLADeadline)
	})

	t.Run("success legacy path without steps", func(t *testing.T) {
		state, inst := submitted(t, nil)

		assert.Nil(t, inst)
		assert.Nil(t, state.WorkflowID)
		assert.Equal(t, workflow.StatusPendingManager, state.Status)
		assert.Equal(t, 1, state.ApprovalLevel)
		assert.Equal(t, workflow.ApproverDirectManager, state.CurrentApproverRole)
	})

	t.Run("success zero sla leaves no deadline", func(t *testing.T) {
		def := newDefinition(workflow.ApproverHR)
		steps := def.StepList()
		steps[0].SLAHours = 0
		def.SetSteps(steps)

		_, inst := submitted(t, def)
		assert.Nil(t, inst.SLADeadline)
	})

	t.Run("negative already submitted", func(t *testing.T) {
		state := &workflow.State{Status: workflow.StatusPending}
		_, err := workflow.Submit(state, newDefinition(workflow.ApproverHR), testNow)
		assert.ErrorIs(t, err, workflowerrors.ErrAlreadySubmitted)
	})
}

func TestApprove_DrivesEveryStepToApproved(t *testing.T) {
	types := []string{
		workflow.ApproverDirectManager,
		workflow.ApproverDepartmentHead,
		workflow.ApproverFinance,
		workflow.ApproverHR,
	}
	for n := 1; n <= len(types); n++ {
		def := newDefinition(types[:n]...)
		state, inst := submitted(t, def)

		prevLevel := state.ApprovalLevel
		for i := 0; i < n; i++ {
			assert.Equal(t, workflow.StatusPending, state.Status)
			actor := workflow.Actor{ID: uuid.New(), ApproverType: state.CurrentApproverRole}

			tr, err := workflow.Approve(state, inst, def, actor, "ok", testNow)
			assert.NoError(t, err)
			assert.NotNil(t, tr.Action)
			assert.Equal(t, i+1, tr.Action.StepNumber)
			assert.Equal(t, inst.RequestID, tr.Action.RequestID)
			assert.Greater(t, state.ApprovalLevel, prevLevel)
			assert.LessOrEqual(t, state.ApprovalLevel, n+1)
			prevLevel = state.ApprovalLevel
		}

		assert.Equal(t, workflow.StatusApproved, state.Status)
		assert.Equal(t, n+1, state.ApprovalLevel)
		assert.Empty(t, state.CurrentApproverRole)
		assert.NotNil(t, state.FinalApprovedBy)
		assert.Equal(t, workflow.InstanceApproved, inst.Status)
		assert.NotNil(t, inst.CompletedAt)
	}
}

func TestApprove(t *testing.T) {
	manager := uuid.New()
	hr := uuid.New()

	t.Run("success two step scenario", func(t *testing.T) {
		def := newDefinition(workflow.ApproverDirectManager, workflow.ApproverHR)
		state, inst := submitted(t, def)

		tr, err := workflow.Approve(state, inst, def, workflow.Actor{ID: manager, ApproverType: workflow.ApproverDirectManager}, "", testNow)
		assert.NoError(t, err)
		assert.False(t, tr.Completed)
		assert.Equal(t, workflow.ApproverHR, tr.NextRole)
		assert.Equal(t, 2, tr.Next.StepNumber)
		assert.Equal(t, 2, state.ApprovalLevel)
		assert.Equal(t, 2, inst.CurrentStep)
		assert.Equal(t, manager, *state.ManagerApprovedBy)
		assert.Equal(t, workflow.ActionApproved, tr.Action.Action)

		tr, err = workflow.Approve(state, inst, def, workflow.Actor{ID: hr, ApproverType: workflow.ApproverHR}, "", testNow)
		assert.NoError(t, err)
		assert.True(t, tr.Completed)
		assert.Nil(t, tr.Next)
		assert.Equal(t, workflow.StatusApproved, state.Status)
		assert.Equal(t, 3, state.ApprovalLevel)
		assert.Equal(t, hr, *state.FinalApprovedBy)
		assert.Nil(t, inst.SLADeadline)
	})

	t.Run("success legacy chain", func(t *testing.T) {
		state, _ := submitted(t, nil)

		tr, err := workflow.Approve(state, nil, nil, workflow.Actor{ID: manager, ApproverType: workflow.ApproverDirectManager}, "", testNow)
		assert.NoError(t, err)
		assert.Nil(t, tr.Action)
		assert.Equal(t, workflow.StatusPendingHR, state.Status)
		assert.Equal(t, 2, state.ApprovalLevel)
		assert.Equal(t, workflow.ApproverHR, state.CurrentApproverRole)

		tr, err = workflow.Approve(state, nil, nil, workflow.Actor{ID: hr, ApproverType: workflow.ApproverHR}, "", testNow)
		assert.NoError(t, err)
		assert.True(t, tr.Completed)
		assert.Equal(t, workflow.StatusApproved, state.Status)
		assert.Equal(t, 3, state.ApprovalLevel)
	})

	t.Run("negative approver mismatch", func(t *testing.T) {
		def := newDefinition(workflow.ApproverDirectManager, workflow.ApproverHR)
		state, inst := submitted(t, def)

		_, err := workflow.Approve(state, inst, def, workflow.Actor{ID: hr, ApproverType: workflow.ApproverHR}, "", testNow)
		assert.ErrorIs(t, err, workflowerrors.ErrApproverMismatch)
		assert.Equal(t, 1, state.ApprovalLevel)
	})

	t.Run("negative draft", func(t *testing.T) {
		state := &workflow.State{Status: workflow.StatusDraft}
		_, err := workflow.Approve(state, nil, nil, workflow.Actor{ApproverType: workflow.ApproverHR}, "", testNow)
		assert.ErrorIs(t, err, workflowerrors.ErrNotSubmitted)
	})

	t.Run("negative terminal", func(t *testing.T) {
		state := &workflow.State{Status: workflow.StatusApproved}
		_, err := workflow.Approve(state, nil, nil, workflow.Actor{ApproverType: workflow.ApproverHR}, "", testNow)
		assert.ErrorIs(t, err, workflowerrors.ErrTerminalState)
	})

	t.Run("negative missing instance", func(t *testing.T) {
		def := newDefinition(workflow.ApproverHR)
		state, _ := submitted(t, def)

		_, err := workflow.Approve(state, nil, def, workflow.Actor{ApproverType: workflow.ApproverHR}, "", testNow)
		assert.ErrorIs(t, err, workflowerrors.ErrWorkflowUnavailable)
	})

	t.Run("negative level beyond steps", func(t *testing.T) {
		def := newDefinition(workflow.ApproverHR)
		state, inst := submitted(t, def)
		state.ApprovalLevel = 5

		_, err := workflow.Approve(state, inst, def, workflow.Actor{ApproverType: workflow.ApproverHR}, "", testNow)
		assert.ErrorIs(t, err, workflowerrors.ErrInvalidApprovalLevel)
	})
}

func TestReject(t *testing.T) {
	approver := uuid.New()

	t.Run("success at first step", func(t *testing.T) {
		def := newDefinition(workflow.ApproverDirectManager, workflow.ApproverHR)
		state, inst := submitted(t, def)

		tr, err := workflow.Reject(state, inst, def, workflow.Actor{ID: approver, ApproverType: workflow.ApproverDirectManager}, "  short staffed ", testNow)
		assert.NoError(t, err)
		assert.True(t, tr.Completed)
		assert.Equal(t, workflow.ActionRejected, tr.Action.Action)
		assert.Equal(t, 1, tr.Action.StepNumber)
		assert.Equal(t, workflow.StatusRejected, state.Status)
		assert.Equal(t, "short staffed", state.RejectionReason)
		assert.Equal(t, workflow.ApproverDirectManager, state.RejectedAtStage)
		assert.Equal(t, approver, *state.RejectedBy)
		assert.Equal(t, workflow.InstanceRejected, inst.Status)

		_, err = workflow.Approve(state, inst, def, workflow.Actor{ApproverType: workflow.ApproverHR}, "", testNow)
		assert.ErrorIs(t, err, workflowerrors.ErrTerminalState)
	})

	t.Run("success legacy at HR stage", func(t *testing.T) {
		state := &workflow.State{Status: workflow.StatusPendingHR, ApprovalLevel: 2, CurrentApproverRole: workflow.ApproverHR}

		tr, err := workflow.Reject(state, nil, nil, workflow.Actor{ID: approver, ApproverType: workflow.ApproverHR}, "no", testNow)
		assert.NoError(t, err)
		assert.Nil(t, tr.Action)
		assert.Equal(t, workflow.ApproverHR, state.RejectedAtStage)
		assert.Equal(t, workflow.StatusRejected, state.Status)
	})

	t.Run("negative blank reason", func(t *testing.T) {
		def := newDefinition(workflow.ApproverDirectManager)
		state, inst := submitted(t, def)

		_, err := workflow.Reject(state, inst, def, workflow.Actor{ApproverType: workflow.ApproverDirectManager}, "   ", testNow)
		assert.ErrorIs(t, err, workflowerrors.ErrRejectionReasonRequired)
		assert.Equal(t, workflow.StatusPending, state.Status)
	})
}

func TestCancel(t *testing.T) {
	t.Run("success pending", func(t *testing.T) {
		def := newDefinition(workflow.ApproverHR)
		state, inst := submitted(t, def)

		assert.NoError(t, workflow.Cancel(state, inst, testNow))
		assert.Equal(t, workflow.StatusCancelled, state.Status)
		assert.Equal(t, workflow.InstanceCancelled, inst.Status)
		assert.NotNil(t, inst.CompletedAt)
	})

	t.Run("negative terminal", func(t *testing.T) {
		state := &workflow.State{Status: workflow.StatusRejected}
		assert.ErrorIs(t, workflow.Cancel(state, nil, testNow), workflowerrors.ErrTerminalState)
	})
}

func TestInFlightRequestsRunOnSubmittedSteps(t *testing.T) {
	manager := workflow.Actor{ID: uuid.New(), ApproverType: workflow.ApproverDirectManager}
	hr := workflow.Actor{ID: uuid.New(), ApproverType: workflow.ApproverHR}

	t.Run("success approve after a step is removed", func(t *testing.T) {
		def := newDefinition(workflow.ApproverDirectManager, workflow.ApproverHR)
		state, inst := submitted(t, def)
		_, err := workflow.Approve(state, inst, def, manager, "", testNow)
		assert.NoError(t, err)

		assert.NoError(t, def.RemoveStep(2))

		tr, err := workflow.Approve(state, inst, def, hr, "", testNow)
		assert.NoError(t, err)
		assert.True(t, tr.Completed)
		assert.Equal(t, 2, tr.Action.StepNumber)
		assert.Equal(t, workflow.StatusApproved, state.Status)
		assert.Equal(t, 3, state.ApprovalLevel)
	})

	t.Run("success reject after a step is removed", func(t *testing.T) {
		def := newDefinition(workflow.ApproverDirectManager, workflow.ApproverHR)
		state, inst := submitted(t, def)
		_, err := workflow.Approve(state, inst, def, manager, "", testNow)
		assert.NoError(t, err)

		assert.NoError(t, def.RemoveStep(2))

		_, err = workflow.Reject(state, inst, def, hr, "budget freeze", testNow)
		assert.NoError(t, err)
		assert.Equal(t, workflow.StatusRejected, state.Status)
		assert.Equal(t, workflow.ApproverHR, state.RejectedAtStage)
	})

	t.Run("success definition deleted", func(t *testing.T) {
		def := newDefinition(workflow.ApproverDirectManager, workflow.ApproverHR)
		state, inst := submitted(t, def)

		_, err := workflow.Approve(state, inst, nil, manager, "", testNow)
		assert.NoError(t, err)
		assert.Equal(t, 2, state.ApprovalLevel)
		assert.Equal(t, workflow.ApproverHR, state.CurrentApproverRole)
	})

	t.Run("success instance keeps its own copy", func(t *testing.T) {
		def := newDefinition(workflow.ApproverDirectManager, workflow.ApproverHR)
		_, inst := submitted(t, def)

		assert.NoError(t, def.MoveStep(2, workflow.MoveUp))

		steps := workflow.StepsFor(inst, def)
		assert.Len(t, steps, 2)
		assert.Equal(t, workflow.ApproverDirectManager, steps[0].ApproverType)
	})
}
