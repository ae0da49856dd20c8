package main

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/MihkelHunter/taskflow/internal/palette"
	"github.com/MihkelHunter/taskflow/internal/search"
	"github.com/MihkelHunter/taskflow/internal/todo"
)

func (s *appState) buildTasksTab() fyne.CanvasObject {
	addBtn := widget.NewButton("+ Add Task", func() { s.showTaskForm(nil) })
	addBtn.Importance = widget.HighImportance

	filterBtn := func(label, status string) *widget.Button {
		return widget.NewButton(label, func() { s.taskFilter = status; s.refresh() })
	}
	filterRow := container.NewHBox(
		filterBtn("All", ""),
		filterBtn("Pending", string(todo.StatusPending)),
		filterBtn("In Progress", string(todo.StatusInProgress)),
		filterBtn("Completed", string(todo.StatusCompleted)),
		layout.NewSpacer(),
		addBtn,
	)

	s.taskList = widget.NewList(
		func() int { return len(s.tasks) },
		func() fyne.CanvasObject { return newTaskRow(s) },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if i < len(s.tasks) {
				obj.(*taskRow).bind(s.tasks[i], s.ctrl.Active() == s.tasks[i].ID)
			}
		},
	)
	s.taskList.OnSelected = func(id widget.ListItemID) { s.taskList.Unselect(id) }

	return container.NewBorder(container.NewPadded(filterRow), nil, nil, nil, s.taskList)
}

func filterTasks(tasks []todo.Task, query, status string) []todo.Task {
	tasks = search.Filter(tasks, query)
	if status != "" {
		tasks = todo.TasksWithStatus(tasks, todo.Status(status))
	}
	return tasks
}

// ── Task row ──────────────────────────────────────────────────────────────────

type taskRow struct {
	widget.BaseWidget

	s    *appState
	task todo.Task

	bg        *canvas.Rectangle
	priDot    *canvas.Circle
	title     *widget.Label
	meta      *widget.Label
	progress  *widget.ProgressBar
	status    *widget.Select
	focusBtn  *widget.Button
	editBtn   *widget.Button
	deleteBtn *widget.Button
}

func newTaskRow(s *appState) *taskRow {
	r := &taskRow{s: s}

	r.bg = canvas.NewRectangle(theme.Color(palette.ColorNameSurface))
	r.bg.CornerRadius = 8
	r.priDot = canvas.NewCircle(theme.Color(palette.ColorNamePriorityLow))
	r.priDot.Resize(fyne.NewSize(12, 12))

	r.title = widget.NewLabel("title")
	r.title.TextStyle = fyne.TextStyle{Bold: true}
	r.meta = widget.NewLabel("meta")
	r.progress = widget.NewProgressBar()

	labels := make([]string, 0, 3)
	for _, st := range todo.Statuses() {
		labels = append(labels, st.Label())
	}
	r.status = widget.NewSelect(labels, nil)

	r.focusBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() { s.activateFocus(r.task) })
	r.focusBtn.Importance = widget.LowImportance
	r.editBtn = widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		t := r.task
		s.showTaskForm(&t)
	})
	r.editBtn.Importance = widget.LowImportance
	r.deleteBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		t := r.task
		s.confirmDelete("Task", t.Title, func() {
			if s.ctrl.Active() == t.ID {
				s.ctrl.Deactivate()
			}
			s.svc.DeleteTask(t.ID)
		})
	})
	r.deleteBtn.Importance = widget.DangerImportance

	r.ExtendBaseWidget(r)
	return r
}

func (r *taskRow) CreateRenderer() fyne.WidgetRenderer {
	left := container.NewHBox(container.NewCenter(r.priDot))
	right := container.NewHBox(r.status, r.focusBtn, r.editBtn, r.deleteBtn)
	center := container.NewVBox(r.title, r.meta, r.progress)
	content := container.NewBorder(nil, nil, left, right, center)
	return widget.NewSimpleRenderer(container.NewStack(r.bg, container.NewPadded(content)))
}

func (r *taskRow) bind(t todo.Task, focused bool) {
	r.task = t

	r.priDot.FillColor = theme.Color(palette.PriorityColorName(t.Priority))
	r.priDot.Refresh()

	r.bg.FillColor = theme.Color(palette.RowColorName(t.Status == todo.StatusCompleted, focused))
	r.bg.Refresh()

	if t.Status == todo.StatusCompleted {
		r.title.TextStyle = fyne.TextStyle{Italic: true}
	} else {
		r.title.TextStyle = fyne.TextStyle{Bold: true}
	}
	r.title.SetText(t.Title)

	meta := []string{t.Priority.String() + " priority", "created " + humanize.Time(t.CreatedAt)}
	if t.Description != "" {
		meta = append([]string{t.Description}, meta...)
	}
	r.meta.SetText(strings.Join(meta, " · "))

	r.progress.SetValue(float64(t.Progress) / 100)

	// Detach the callback so SetSelected does not write back.
	r.status.OnChanged = nil
	r.status.SetSelected(t.Status.Label())
	id := t.ID
	r.status.OnChanged = func(label string) {
		if err := r.s.svc.SetTaskStatus(id, statusFromLabel(label)); err != nil {
			dialog.ShowError(err, r.s.win)
		}
		r.s.refresh()
	}
}

// ── Task form ─────────────────────────────────────────────────────────────────

func (s *appState) showTaskForm(existing *todo.Task) {
	titleEntry := widget.NewEntry()
	titleEntry.SetPlaceHolder("Task title…")

	descEntry := widget.NewMultiLineEntry()
	descEntry.SetPlaceHolder("Optional description…")
	descEntry.SetMinRowsVisible(3)

	prioritySelect := widget.NewSelect([]string{"Low", "Medium", "High"}, nil)
	prioritySelect.SetSelected("Low")

	statusLabels := make([]string, 0, 3)
	for _, st := range todo.Statuses() {
		statusLabels = append(statusLabels, st.Label())
	}
	statusSelect := widget.NewSelect(statusLabels, nil)
	statusSelect.SetSelected(todo.StatusPending.Label())

	progressEntry := widget.NewEntry()
	progressEntry.SetText("0")

	if existing != nil {
		titleEntry.SetText(existing.Title)
		descEntry.SetText(existing.Description)
		prioritySelect.SetSelected(existing.Priority.String())
		statusSelect.SetSelected(existing.Status.Label())
		progressEntry.SetText(strconv.Itoa(existing.Progress))
	}

	form := widget.NewForm(
		widget.NewFormItem("Title *", titleEntry),
		widget.NewFormItem("Description", descEntry),
		widget.NewFormItem("Priority", prioritySelect),
		widget.NewFormItem("Status", statusSelect),
		widget.NewFormItem("Progress %", progressEntry),
	)

	label := "Add Task"
	if existing != nil {
		label = "Edit Task"
	}

	dialog.ShowCustomConfirm(label, "Save", "Cancel", form, func(ok bool) {
		if !ok {
			return
		}
		progress, err := strconv.Atoi(strings.TrimSpace(progressEntry.Text))
		if err != nil {
			dialog.ShowError(fmt.Errorf("progress must be a number: %w", err), s.win)
			return
		}
		pri, _ := todo.ParsePriority(prioritySelect.Selected)
		status := statusFromLabel(statusSelect.Selected)

		if existing == nil {
			_, err = s.svc.AddTask(todo.TaskDraft{
				Title:       titleEntry.Text,
				Description: descEntry.Text,
				Status:      status,
				Priority:    pri,
				Progress:    progress,
			})
		} else {
			t := *existing
			t.Title = titleEntry.Text
			t.Description = descEntry.Text
			t.Priority = pri
			t.Status = status
			t.Progress = progress
			err = s.svc.UpdateTask(t)
		}
		if err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		s.refresh()
	}, s.win)
}

func statusFromLabel(label string) todo.Status {
	for _, st := range todo.Statuses() {
		if st.Label() == label {
			return st
		}
	}
	return todo.StatusPending
}
