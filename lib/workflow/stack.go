// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package workflow holds the modal steps that collect what a pending
// operation needs before it may be dispatched: the master password, a
// vault name, or an entry's key and fields.
//
// Steps stack: an entry form may have a password prompt on top of it.
// Only the top step receives input. Popping returns control to the step
// beneath, or to the idle base view when the stack is empty.
//
// Rendering is not a step's concern. [Display] maps a step to a
// [DisplayModel] that the terminal UI draws.
package workflow

// Stack is the ordered set of open steps. The zero value is an empty
// stack.
type Stack struct {
	steps []Step
}

// Push opens step on top of the current one.
func (s *Stack) Push(step Step) {
	s.steps = append(s.steps, step)
}

// Pop closes the top step and returns it. Nil on an empty stack.
func (s *Stack) Pop() Step {
	if len(s.steps) == 0 {
		return nil
	}
	top := s.steps[len(s.steps)-1]
	s.steps[len(s.steps)-1] = nil
	s.steps = s.steps[:len(s.steps)-1]
	return top
}

// Top returns the live step, or nil.
func (s *Stack) Top() Step {
	if len(s.steps) == 0 {
		return nil
	}
	return s.steps[len(s.steps)-1]
}

// Len returns the number of open steps.
func (s *Stack) Len() int { return len(s.steps) }

// Clear closes every step.
func (s *Stack) Clear() {
	clear(s.steps)
	s.steps = s.steps[:0]
}

// Steps returns the open steps bottom to top. The slice is a copy;
// the steps are shared.
func (s *Stack) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

// Password returns the password held by the lowest password prompt
// that has one, so a later step can reuse a password the user already
// entered in this workflow.
func (s *Stack) Password() (string, bool) {
	for _, step := range s.steps {
		if prompt, ok := step.(*PasswordPrompt); ok && prompt.Password != "" {
			return prompt.Password, true
		}
	}
	return "", false
}

// TopPasswordPrompt returns the top step if it is a password prompt.
func (s *Stack) TopPasswordPrompt() (*PasswordPrompt, bool) {
	prompt, ok := s.Top().(*PasswordPrompt)
	return prompt, ok
}

// TopVaultNamePrompt returns the top step if it is a vault name prompt.
func (s *Stack) TopVaultNamePrompt() (*VaultNamePrompt, bool) {
	prompt, ok := s.Top().(*VaultNamePrompt)
	return prompt, ok
}

// TopNewEntryForm returns the top step if it is a new entry form.
func (s *Stack) TopNewEntryForm() (*NewEntryForm, bool) {
	form, ok := s.Top().(*NewEntryForm)
	return form, ok
}

// TopExistingEntryForm returns the top step if it is an existing entry
// form.
func (s *Stack) TopExistingEntryForm() (*ExistingEntryForm, bool) {
	form, ok := s.Top().(*ExistingEntryForm)
	return form, ok
}
