package main

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/mindbloom/core/wellness"
	exportsvc "github.com/trezcool/mindbloom/services/export"
)

func newTestForm(t *testing.T) formModel {
	t.Helper()
	conf := setup(t)
	conf.ExportPath = filepath.Join(t.TempDir(), "form.csv")
	a := &app{}
	require.NoError(t, a.init(conf))
	return newFormModel(a)
}

func typeText(m formModel, s string) formModel {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(formModel)
	}
	return m
}

func press(m formModel, k tea.KeyType) formModel {
	next, _ := m.Update(tea.KeyMsg{Type: k})
	return next.(formModel)
}

func fill(m formModel, fields ...string) formModel {
	for i, f := range fields {
		m = typeText(m, f)
		if i < len(fields)-1 {
			m = press(m, tea.KeyTab)
		}
	}
	return m
}

func TestFormModel_preview(t *testing.T) {
	m := newTestForm(t)
	assert.Equal(t, wellness.PreviewIncomplete, m.preview)
	assert.Contains(t, m.View(), "Fill all fields to see status")

	m = fill(m, "Asha", "Yoga", "Music", "7")
	assert.Equal(t, wellness.PreviewNeedsMoreMeTime, m.preview)

	m = typeText(m, "5") // 75
	assert.Equal(t, wellness.PreviewHealthy, m.preview)
	assert.Contains(t, m.View(), "Status: Healthy")

	m = typeText(m, "x")
	assert.Equal(t, wellness.PreviewInvalid, m.preview)
}

func TestFormModel_focus(t *testing.T) {
	m := newTestForm(t)
	m = press(m, tea.KeyShiftTab)
	assert.Equal(t, inputNotes, m.focus)
	m = press(m, tea.KeyTab)
	assert.Equal(t, inputName, m.focus)
	m = press(m, tea.KeyEnter)
	assert.Equal(t, inputWellness, m.focus)
	assert.Zero(t, m.app.svc.Count())
}

func TestFormModel_save(t *testing.T) {
	m := newTestForm(t)

	m = fill(m, "Asha1", "Yoga", "Music", "75", "")
	m = press(m, tea.KeyEnter) // on the last field
	assert.Zero(t, m.app.svc.Count())
	assert.True(t, m.failed)
	assert.Contains(t, m.View(), "name must only contain letters and spaces")

	m = press(m, tea.KeyTab) // back to the name
	m = press(m, tea.KeyBackspace)
	m = press(m, tea.KeyCtrlS)
	require.Equal(t, 1, m.app.svc.Count())
	assert.False(t, m.failed)
	assert.Contains(t, m.View(), "Saved #1 Asha: Healthy")
	assert.Equal(t, inputName, m.focus)
	assert.Equal(t, wellness.NewEntry{}, m.candidate())
}

func TestFormModel_export(t *testing.T) {
	m := newTestForm(t)

	m = press(m, tea.KeyCtrlE)
	assert.True(t, m.failed)
	assert.Contains(t, m.notice, "no entries to export")

	m = fill(m, "Asha", "Yoga", "Music", "75")
	m = press(m, tea.KeyCtrlS)
	m = fill(m, "Chen", "Yoga", "Music", "20")
	m = press(m, tea.KeyCtrlS)
	m = press(m, tea.KeyCtrlE)
	assert.False(t, m.failed)
	assert.Equal(t, "Exported 2 entries to "+m.app.conf.ExportPath+" (2 rows in file)", m.notice)
	assert.Zero(t, m.app.svc.Count())

	rows, err := exportsvc.ReadFile(m.app.conf.ExportPath, "")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestFormModel_quit(t *testing.T) {
	m := newTestForm(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}
