// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package vaultui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pants-project/pants/lib/config"
	"github.com/pants-project/pants/lib/connection"
	"github.com/pants-project/pants/lib/orchestrator"
	"github.com/pants-project/pants/lib/schema/vault"
	"github.com/pants-project/pants/lib/workflow"
)

// connectionEventMsg wraps a connection worker event for the update
// loop.
type connectionEventMsg struct {
	event connection.Event
}

// Model is the bubbletea model of the client.
type Model struct {
	orchestrator *orchestrator.Orchestrator
	events       <-chan connection.Event
	keys         KeyMap
	saveConfig   func(config.Config) error

	width  int
	height int
	ready  bool

	cursor       int
	scrollOffset int
	selected     rowID

	filter    textinput.Model
	filtering bool

	// editor edits the focused field of the modal step. It is rebound
	// whenever the step or the focused field changes.
	editor      textinput.Model
	editorStep  workflow.Step
	editorField string
	focusField  int

	notice      string
	noticeLevel slog.Level
	noticeSeq   uint64
}

// NewModel returns a model driving o. Events from the connection
// worker are read from events; a nil channel means none arrive.
func NewModel(o *orchestrator.Orchestrator, events <-chan connection.Event) Model {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter vaults and keys"

	editor := textinput.New()
	editor.Prompt = ""
	editor.EchoCharacter = '•'

	return Model{
		orchestrator: o,
		events:       events,
		keys:         DefaultKeyMap,
		saveConfig:   saveConfig,
		filter:       filter,
		editor:       editor,
	}
}

// saveConfig persists a config that was loaded from a file.
func saveConfig(cfg config.Config) error {
	if cfg.Path() == "" {
		return nil
	}
	return cfg.Save()
}

// Init starts listening for connection events.
func (model Model) Init() tea.Cmd {
	return listenForConnectionEvent(model.events)
}

// listenForConnectionEvent blocks until the connection worker emits,
// then delivers the event. A closed channel ends the listening.
func listenForConnectionEvent(channel <-chan connection.Event) tea.Cmd {
	if channel == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-channel
		if !ok {
			return nil
		}
		return connectionEventMsg{event: event}
	}
}

// Update routes keys by what has focus: the modal step if one is open,
// then the filter, then the list.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.ensureCursorVisible()
		return model, nil

	case tea.KeyMsg:
		if key.Matches(message, model.keys.ForceQuit) {
			return model, tea.Quit
		}
		if model.orchestrator.Top() != nil {
			return model.handleModalKeys(message)
		}
		if model.filtering {
			return model.handleFilterKeys(message)
		}
		return model.handleListKeys(message)

	case connectionEventMsg:
		cmd := model.apply(orchestrator.FromConnection(message.event))
		return model, tea.Batch(cmd, listenForConnectionEvent(model.events))

	case orchestrator.Event:
		return model, model.apply(message)

	case logRecordMsg:
		model.noticeSeq++
		model.notice = message.Summary
		model.noticeLevel = message.Level
		seq := model.noticeSeq
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{seq: seq}
		})

	case logRecordFadeMsg:
		if message.seq == model.noticeSeq {
			model.notice = ""
		}
	}
	return model, nil
}

// apply hands an event to the orchestrator and brings the list and the
// modal editor back in line with its state.
func (model *Model) apply(event orchestrator.Event) tea.Cmd {
	cmd := model.orchestrator.Handle(event)
	model.restoreSelection()
	model.syncEditor()
	return cmd
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := model.rows()
	current, hasCurrent := model.currentRow(rows)

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		model.moveCursor(rows, -1)
	case key.Matches(message, model.keys.Down):
		model.moveCursor(rows, 1)
	case key.Matches(message, model.keys.PageUp):
		model.moveCursor(rows, -model.visibleHeight())
	case key.Matches(message, model.keys.PageDown):
		model.moveCursor(rows, model.visibleHeight())
	case key.Matches(message, model.keys.Home):
		model.moveCursor(rows, -len(rows))
	case key.Matches(message, model.keys.End):
		model.moveCursor(rows, len(rows))

	case key.Matches(message, model.keys.FilterActivate):
		model.filtering = true
		model.cursor, model.scrollOffset = 0, 0
		return model, model.filter.Focus()

	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Value() != "" {
			model.filter.SetValue("")
			model.restoreSelection()
		}

	case key.Matches(message, model.keys.NewVault):
		return model, model.apply(orchestrator.NewVault{})

	case key.Matches(message, model.keys.Theme):
		return model, model.cycleTheme()

	case !hasCurrent:
		return model, nil

	case key.Matches(message, model.keys.Open):
		if current.isVault() {
			return model, model.apply(orchestrator.ToggleVault{Vault: current.Vault})
		}
		return model, model.apply(orchestrator.ViewEntry{Vault: current.Vault, Key: current.Key})

	case key.Matches(message, model.keys.Toggle):
		return model, model.apply(orchestrator.ToggleVault{Vault: current.Vault})

	case key.Matches(message, model.keys.NewEntry):
		return model, model.apply(orchestrator.NewEntry{Vault: current.Vault})

	case key.Matches(message, model.keys.Delete):
		if current.isVault() {
			return model, model.apply(orchestrator.DeleteVault{Vault: current.Vault})
		}
		return model, model.apply(orchestrator.DeleteEntry{Vault: current.Vault, Key: current.Key})
	}
	return model, nil
}

func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		if model.filter.Value() != "" {
			model.filter.SetValue("")
		} else {
			model.filtering = false
			model.filter.Blur()
		}
		model.restoreSelection()
		return model, nil
	case tea.KeyEnter:
		model.filtering = false
		model.filter.Blur()
		return model, nil
	case tea.KeyUp, tea.KeyDown:
		step := 1
		if message.Type == tea.KeyUp {
			step = -1
		}
		model.moveCursor(model.rows(), step)
		return model, nil
	}

	var cmd tea.Cmd
	model.filter, cmd = model.filter.Update(message)
	model.cursor, model.scrollOffset = 0, 0
	if rows := model.rows(); len(rows) > 0 {
		model.selected = rows[0].id()
	}
	return model, cmd
}

func (model Model) handleModalKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	model.syncEditor()
	step := model.orchestrator.Top()

	switch {
	case key.Matches(message, model.keys.Cancel):
		return model, model.apply(orchestrator.Cancel{})
	case key.Matches(message, model.keys.Submit):
		return model, model.apply(orchestrator.Submit{})
	case key.Matches(message, model.keys.NextField):
		model.focusField++
		model.syncEditor()
		return model, nil
	case key.Matches(message, model.keys.PreviousField):
		model.focusField--
		model.syncEditor()
		return model, nil
	case key.Matches(message, model.keys.Layout):
		return model, model.apply(orchestrator.ChoiceSelected{Choice: stepChoice(step).Next()})
	case key.Matches(message, model.keys.Generate):
		return model, model.apply(orchestrator.GeneratePassword{})
	case key.Matches(message, model.keys.ShowHide):
		if form, ok := step.(*workflow.ExistingEntryForm); ok && !form.Hidden {
			return model, model.apply(orchestrator.HideSecret{})
		}
		return model, model.apply(orchestrator.ShowSecret{})
	case key.Matches(message, model.keys.Copy):
		return model, model.apply(orchestrator.CopySecret{Field: model.editorField})
	}

	before := model.editor.Value()
	var cmd tea.Cmd
	model.editor, cmd = model.editor.Update(message)
	if after := model.editor.Value(); after != before {
		if event := changeEvent(step, model.editorField, after); event != nil {
			return model, tea.Batch(cmd, model.apply(event))
		}
	}
	return model, cmd
}

// changeEvent maps an edit of the named field of step to the
// orchestrator event carrying it.
func changeEvent(step workflow.Step, field, value string) orchestrator.Event {
	switch step.(type) {
	case *workflow.PasswordPrompt:
		if field == "confirm" {
			return orchestrator.ConfirmChanged{Value: value}
		}
		return orchestrator.PasswordChanged{Value: value}
	case *workflow.VaultNamePrompt:
		return orchestrator.VaultNameChanged{Value: value}
	case *workflow.NewEntryForm:
		if field == "key" {
			return orchestrator.KeyChanged{Value: value}
		}
		return orchestrator.FieldChanged{Name: field, Value: value}
	case *workflow.ExistingEntryForm:
		return orchestrator.FieldChanged{Name: field, Value: value}
	}
	return nil
}

func stepChoice(step workflow.Step) vault.Choice {
	switch step := step.(type) {
	case *workflow.NewEntryForm:
		return step.Choice
	case *workflow.ExistingEntryForm:
		return step.Choice
	}
	return vault.DefaultChoice
}

// syncEditor binds the editor to the focused editable field of the top
// step and copies the field's value in when the two differ.
func (model *Model) syncEditor() {
	step := model.orchestrator.Top()
	if step != model.editorStep {
		model.editorStep = step
		model.focusField = 0
		model.editorField = ""
	}
	if step == nil {
		model.editor.Blur()
		model.editor.SetValue("")
		return
	}

	editable := editableFields(workflow.Display(step))
	if len(editable) == 0 {
		model.editorField = ""
		model.editor.Blur()
		return
	}
	model.focusField = (model.focusField%len(editable) + len(editable)) % len(editable)
	field := editable[model.focusField]

	if field.Name != model.editorField || model.editor.Value() != field.Value {
		model.editorField = field.Name
		model.editor.SetValue(field.Value)
		model.editor.CursorEnd()
	}
	model.editor.EchoMode = textinput.EchoNormal
	if field.Masked {
		model.editor.EchoMode = textinput.EchoPassword
	}
	model.editor.Focus()
}

func editableFields(display workflow.DisplayModel) []workflow.DisplayField {
	var fields []workflow.DisplayField
	for _, field := range display.Fields {
		if field.Editable {
			fields = append(fields, field)
		}
	}
	return fields
}

// cycleTheme switches to the next theme and saves it when the config
// came from a file.
func (model *Model) cycleTheme() tea.Cmd {
	cfg := model.orchestrator.Config()
	cfg.Theme = config.NextTheme(cfg.Theme)
	cmd := model.apply(orchestrator.ApplyConfig{Config: cfg})
	if err := model.saveConfig(cfg); err != nil {
		model.notice = "saving theme: " + err.Error()
		model.noticeLevel = slog.LevelError
	}
	return cmd
}

func (model Model) rows() []row {
	return buildRows(model.orchestrator.Directory(), model.filter.Value())
}

func (model Model) currentRow(rows []row) (row, bool) {
	if model.cursor < 0 || model.cursor >= len(rows) {
		return row{}, false
	}
	return rows[model.cursor], true
}

func (model *Model) moveCursor(rows []row, delta int) {
	if len(rows) == 0 {
		model.cursor = 0
		return
	}
	model.cursor = min(max(model.cursor+delta, 0), len(rows)-1)
	model.selected = rows[model.cursor].id()
	model.ensureCursorVisible()
}

// restoreSelection keeps the cursor on the same vault or entry after
// the list changes. A row that disappeared falls back to its vault,
// then to the nearest position.
func (model *Model) restoreSelection() {
	rows := model.rows()
	if len(rows) == 0 {
		model.cursor = 0
		return
	}
	fallback := -1
	for index, r := range rows {
		if r.id() == model.selected {
			model.cursor = index
			model.ensureCursorVisible()
			return
		}
		if r.isVault() && r.Vault == model.selected.vault {
			fallback = index
		}
	}
	if fallback >= 0 {
		model.cursor = fallback
	} else {
		model.cursor = min(model.cursor, len(rows)-1)
	}
	model.selected = rows[model.cursor].id()
	model.ensureCursorVisible()
}

// visibleHeight is the number of list rows on screen: everything but
// the header, separator, status and help lines.
func (model Model) visibleHeight() int {
	return max(model.height-4, 1)
}

func (model *Model) ensureCursorVisible() {
	height := model.visibleHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+height {
		model.scrollOffset = model.cursor - height + 1
	}
	model.scrollOffset = max(model.scrollOffset, 0)
}
