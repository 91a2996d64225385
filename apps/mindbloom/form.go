package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/trezcool/mindbloom/core/wellness"
)

const (
	inputName = iota
	inputWellness
	inputMeTime
	inputMinutes
	inputNotes
	inputCount
)

var inputLabels = [inputCount]string{"Student name", "Wellness activity", "Me-time activity", "Screen-free minutes", "Notes"}

// formModel is the entry form: the status line follows every keystroke.
type formModel struct {
	app      *app
	inputs   []textinput.Model
	focus    int
	preview  wellness.Preview
	notice   string
	failed   bool
	quitting bool
}

func newFormModel(a *app) formModel {
	m := formModel{app: a, inputs: make([]textinput.Model, inputCount)}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 32
		m.inputs[i] = ti
	}
	m.inputs[inputWellness].Placeholder = strings.Join(a.catalog.List(wellness.KindWellness), ", ")
	m.inputs[inputMeTime].Placeholder = strings.Join(a.catalog.List(wellness.KindMeTime), ", ")
	m.inputs[inputMinutes].Placeholder = "eg. 75"
	m.inputs[inputNotes].Placeholder = "optional"
	m.inputs[inputNotes].CharLimit = 256
	m.inputs[inputName].Focus()
	m.preview = wellness.PreviewIncomplete
	return m
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "enter":
			if m.focus < inputCount-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			m.save()
			return m, nil
		case "ctrl+s":
			m.save()
			return m, nil
		case "ctrl+e":
			m.export()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.preview = m.app.svc.Preview(m.candidate())
	return m, cmd
}

func (m *formModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = (i + inputCount) % inputCount
	m.inputs[m.focus].Focus()
}

func (m formModel) candidate() wellness.NewEntry {
	return wellness.NewEntry{
		StudentName:       m.inputs[inputName].Value(),
		WellnessActivity:  m.inputs[inputWellness].Value(),
		MeTimeActivity:    m.inputs[inputMeTime].Value(),
		ScreenFreeMinutes: m.inputs[inputMinutes].Value(),
		Notes:             m.inputs[inputNotes].Value(),
	}
}

func (m *formModel) save() {
	e, idx, err := m.app.svc.Log(m.candidate())
	if err != nil {
		m.failed = true
		if vErr, ok := wellness.AsValidationError(err); ok {
			m.notice = vErr.Details()
		} else {
			m.notice = err.Error()
		}
		return
	}
	m.failed = false
	m.notice = fmt.Sprintf("Saved #%d %s: %s", idx+1, e.StudentName(), e.Status())
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.setFocus(inputName)
	m.preview = wellness.PreviewIncomplete
}

func (m *formModel) export() {
	path := m.app.conf.ExportPath
	count := m.app.svc.Count()
	n, err := exportSession(m.app, path, true)
	if err != nil {
		m.failed = true
		m.notice = "Export failed: " + err.Error()
		return
	}
	m.app.svc.Clear()
	m.failed = false
	m.notice = fmt.Sprintf("Exported %d entries to %s (%d rows in file)", count, path, n)
}

func (m formModel) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.app.conf.AppName+" - wellness entry") + "\n\n")
	for i, ti := range m.inputs {
		label := fmt.Sprintf("%-20s", inputLabels[i])
		if i == m.focus {
			label = headerStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		sb.WriteString(label + " " + ti.View() + "\n")
	}
	sb.WriteString("\n" + previewStyle(m.preview).Render(m.preview.Message()) + "\n")

	stats := m.app.svc.Summary()
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("Session: %d entries, %d healthy, average %.1f minutes",
		stats.Total, stats.Healthy, stats.AverageMinutes)) + "\n")
	if m.notice != "" {
		style := healthyStyle
		if m.failed {
			style = invalidStyle
		}
		sb.WriteString("\n" + style.Render(m.notice) + "\n")
	}
	sb.WriteString("\n" + mutedStyle.Render("tab/enter next field • ctrl+s save • ctrl+e export • esc quit") + "\n")
	return sb.String()
}

func newFormCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Log entries through a form with a live status preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := tea.NewProgram(newFormModel(a), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil {
				return err
			}
			if n := a.svc.Count(); n > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d entries were not exported\n", n)
			}
			return nil
		},
	}
}
