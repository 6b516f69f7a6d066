package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/folio/internal/components"
	"github.com/alexisbeaulieu97/folio/internal/scene"
)

// Update handles Bubble Tea messages. Every path ends by pushing the scroll
// offset to the detector and draining timers registered along the way.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case TimerMsg:
		m.opts.Scheduler.Deliver(msg)

	case scrollFrameMsg:
		if msg.gen == m.scroll.gen && m.scroll.active && m.stepScroll() {
			cmds = append(cmds, scrollFrame(m.scroll.gen))
		}

	case tea.MouseMsg:
		m.opts.Pointer.Handle(msg, headerRows)
		if msg.Action == tea.MouseActionPress && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown) {
			m.stopScroll()
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	case copiedMsg:
		if msg.err != nil {
			m.opts.Logger.Warn(m.ctx, "clipboard unavailable", "error", msg.err)
			m.alert = components.ErrorAlert("could not copy " + msg.text)
		} else {
			m.alert = components.SuccessAlert("copied " + msg.text)
		}

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)
	}

	if m.page != nil {
		m.syncDetector(false)
	}
	cmds = append(cmds, m.opts.Scheduler.Commands())
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.alert = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Log):
		m.showLog = !m.showLog
		return m, nil
	}

	if m.page == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Jump):
		section, err := sectionForDigit(msg.String())
		if err != nil {
			return m, nil
		}
		return m, m.jump(section)

	case key.Matches(msg, m.keys.Next):
		return m, m.jump(m.opts.Navigation.Current().Next())

	case key.Matches(msg, m.keys.Theme):
		mode := m.opts.Theme.Toggle()
		components.SetMode(mode)
		m.rebuildPage()
		m.alert = components.InfoAlert(mode.String() + " mode")
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, copyCmd(m.opts.Copy, m.opts.Detector.Active().Anchor())

	case key.Matches(msg, m.keys.Remount):
		m.remount()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.stopScroll()
		m.viewport.SetYOffset(m.viewport.YOffset - 1)
	case key.Matches(msg, m.keys.Down):
		m.stopScroll()
		m.viewport.SetYOffset(m.viewport.YOffset + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.stopScroll()
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.stopScroll()
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
	case key.Matches(msg, m.keys.Top):
		m.stopScroll()
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.stopScroll()
		m.viewport.GotoBottom()
	}
	return m, nil
}

func sectionForDigit(digit string) (scene.Section, error) {
	sections := scene.Sections()
	if len(digit) != 1 || digit[0] < '1' || int(digit[0]-'1') >= len(sections) {
		return 0, scene.NewError(scene.ErrCodeNotFound, "no section bound to "+digit, nil, nil)
	}
	return sections[digit[0]-'1'], nil
}
