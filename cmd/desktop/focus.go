package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/MihkelHunter/taskflow/internal/focus"
	"github.com/MihkelHunter/taskflow/internal/todo"
)

// focusPanel is the timer strip above the footer stats.
type focusPanel struct {
	content  fyne.CanvasObject
	task     *widget.Label
	clock    *canvas.Text
	bar      *widget.ProgressBar
	minutes  *widget.Label
	slider   *widget.Slider
	playBtn  *widget.Button
	resetBtn *widget.Button
}

func (s *appState) newFocusPanel() *focusPanel {
	p := &focusPanel{}

	p.task = widget.NewLabel("No active task")
	p.task.TextStyle = fyne.TextStyle{Bold: true}

	p.clock = canvas.NewText(focus.FormatClock(0), theme.Color(theme.ColorNamePrimary))
	p.clock.TextSize = 24
	p.clock.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}

	p.bar = widget.NewProgressBar()
	p.bar.Max = 100
	p.bar.TextFormatter = func() string { return "" }

	p.minutes = widget.NewLabel("")
	p.slider = widget.NewSlider(focus.MinMinutes, focus.MaxMinutes)
	p.slider.Step = focus.MinuteStep
	p.slider.SetValue(float64(s.ctrl.Snapshot().Minutes))
	p.slider.OnChangeEnded = func(v float64) {
		if err := s.ctrl.SetDuration(int(v)); err != nil {
			s.logger.Warn("set focus duration", "err", err)
		}
		p.update(s.ctrl.Snapshot(), s.activeTitle())
	}

	p.playBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		if err := s.ctrl.Toggle(s.ctx); err != nil {
			dialog.ShowError(err, s.win)
		}
		p.update(s.ctrl.Snapshot(), s.activeTitle())
	})
	p.playBtn.Importance = widget.HighImportance
	p.resetBtn = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() {
		s.ctrl.Reset()
		p.update(s.ctrl.Snapshot(), s.activeTitle())
	})

	controls := container.NewHBox(p.playBtn, p.resetBtn, p.minutes, container.NewGridWrap(fyne.NewSize(160, 36), p.slider))
	top := container.NewBorder(nil, nil, p.task, container.NewHBox(p.clock, layout.NewSpacer(), controls))
	p.content = container.NewVBox(top, p.bar)
	return p
}

// update must run on the fyne goroutine.
func (p *focusPanel) update(ev focus.Event, title string) {
	if ev.TaskID == "" {
		p.task.SetText("No active task · pick one with ▶ in the task list")
		p.playBtn.Disable()
		p.resetBtn.Disable()
	} else {
		p.task.SetText("Focusing on: " + title)
		p.playBtn.Enable()
		p.resetBtn.Enable()
	}

	p.clock.Text = ev.Clock()
	p.clock.Refresh()
	p.bar.SetValue(ev.Progress)
	p.minutes.SetText(fmt.Sprintf("%d min", ev.Minutes))

	if ev.Running {
		p.playBtn.SetIcon(theme.MediaPauseIcon())
		p.slider.Disable()
	} else {
		p.playBtn.SetIcon(theme.MediaPlayIcon())
		p.slider.Enable()
	}
}

func (s *appState) activeTitle() string {
	if t, ok := s.svc.Task(s.ctrl.Active()); ok {
		return t.Title
	}
	return ""
}

func (s *appState) activateFocus(t todo.Task) {
	s.ctrl.Activate(t.ID)
	s.refresh()
}

// finishFocus credits the session to its task and tells the user.
func (s *appState) finishFocus(ev focus.Event) {
	s.svc.Reload()
	t, ok := s.svc.CompleteFocusSession(ev.TaskID)
	s.refresh()
	if !ok {
		return
	}
	msg := fmt.Sprintf("%q is now at %d%%.", t.Title, t.Progress)
	if t.Status == todo.StatusCompleted {
		msg += " Task completed!"
	}
	dialog.ShowInformation("Focus session complete", msg, s.win)
}
