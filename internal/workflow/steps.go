package workflow

import (
	workflowerrors "go-ess/internal/workflow/errors"

	"github.com/google/uuid"
)

const (
	MoveUp   = "up"
	MoveDown = "down"
)

// Renumber rewrites StepNumber to 1..N in slice order.
func Renumber(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.StepNumber = i + 1
		out[i] = s
	}
	return out
}

func (d *Definition) AddStep(step Step) error {
	if err := validateStep(step); err != nil {
		return err
	}
	d.SetSteps(append(d.StepList(), step))
	return nil
}

func (d *Definition) UpdateStep(stepNumber int, step Step) error {
	if err := validateStep(step); err != nil {
		return err
	}
	steps := d.StepList()
	idx, err := stepIndex(steps, stepNumber)
	if err != nil {
		return err
	}
	steps[idx] = step
	d.SetSteps(steps)
	return nil
}

func (d *Definition) RemoveStep(stepNumber int) error {
	steps := d.StepList()
	idx, err := stepIndex(steps, stepNumber)
	if err != nil {
		return err
	}
	d.SetSteps(append(steps[:idx], steps[idx+1:]...))
	return nil
}

// MoveStep swaps a step with its neighbour in direction.
func (d *Definition) MoveStep(stepNumber int, direction string) error {
	steps := d.StepList()
	idx, err := stepIndex(steps, stepNumber)
	if err != nil {
		return err
	}

	var target int
	switch direction {
	case MoveUp:
		target = idx - 1
	case MoveDown:
		target = idx + 1
	default:
		return workflowerrors.ErrInvalidMoveDirection
	}
	if target < 0 || target >= len(steps) {
		return workflowerrors.ErrStepMoveOutOfRange
	}

	steps[idx], steps[target] = steps[target], steps[idx]
	d.SetSteps(steps)
	return nil
}

// Validate checks every step and that numbering is exactly 1..N.
func (d *Definition) Validate() error {
	if d.SLAHours < 0 || d.EscalationAfterHours < 0 {
		return workflowerrors.ErrNegativeSLA
	}
	for i, step := range d.StepList() {
		if step.StepNumber != i+1 {
			return workflowerrors.ErrStepsNotContiguous
		}
		if err := validateStep(step); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(step Step) error {
	if !IsApproverType(step.ApproverType) {
		return workflowerrors.ErrInvalidApproverType
	}
	if step.SLAHours < 0 {
		return workflowerrors.ErrNegativeSLA
	}
	if step.ApproverType == ApproverSpecificUser {
		if _, err := uuid.Parse(step.ApproverID); err != nil {
			return workflowerrors.ErrApproverIDRequired
		}
	}
	return nil
}

func stepIndex(steps []Step, stepNumber int) (int, error) {
	for i, s := range steps {
		if s.StepNumber == stepNumber {
			return i, nil
		}
	}
	return -1, workflowerrors.ErrStepNotFound
}
