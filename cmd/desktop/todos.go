package main

import (
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

const allRecurrences = "All"

func recurrenceLabels() []string {
	labels := []string{allRecurrences}
	for _, r := range todo.Recurrences() {
		labels = append(labels, r.Label())
	}
	return labels
}

func recurrenceFromLabel(label string) todo.Recurrence {
	for _, r := range todo.Recurrences() {
		if r.Label() == label {
			return r
		}
	}
	return todo.RecurrenceNone
}

func (s *appState) buildTodosTab() fyne.CanvasObject {
	addBtn := widget.NewButton("+ Add To-Do", func() { s.showTodoForm(nil) })
	addBtn.Importance = widget.HighImportance

	allBtn := widget.NewButton("All", func() { s.todoFilter = "all"; s.refresh() })
	activeBtn := widget.NewButton("Active", func() { s.todoFilter = "active"; s.refresh() })
	doneBtn := widget.NewButton("Done", func() { s.todoFilter = "done"; s.refresh() })

	recSelect := widget.NewSelect(recurrenceLabels(), nil)
	recSelect.SetSelected(allRecurrences)
	recSelect.OnChanged = func(label string) {
		s.recFilter = label
		s.refresh()
	}

	filterRow := container.NewHBox(allBtn, activeBtn, doneBtn, recSelect, layout.NewSpacer(), addBtn)

	s.todoList = widget.NewList(
		func() int { return len(s.todos) },
		func() fyne.CanvasObject { return newTodoRow(s) },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if i < len(s.todos) {
				obj.(*todoRow).bind(s.todos[i])
			}
		},
	)
	s.todoList.OnSelected = func(id widget.ListItemID) { s.todoList.Unselect(id) }

	return container.NewBorder(container.NewPadded(filterRow), nil, nil, nil, s.todoList)
}

func filterTodos(todos []todo.Todo, query, state, recurrence string) []todo.Todo {
	todos = search.Filter(todos, query)
	switch state {
	case "active":
		todos = todo.TodosWithCompletion(todos, false)
	case "done":
		todos = todo.TodosWithCompletion(todos, true)
	}
	if recurrence != "" && recurrence != allRecurrences {
		todos = todo.TodosWithRecurrence(todos, recurrenceFromLabel(recurrence))
	}
	return todos
}

// ── To-do row ─────────────────────────────────────────────────────────────────

type todoRow struct {
	widget.BaseWidget

	s    *appState
	item todo.Todo

	bg        *canvas.Rectangle
	priDot    *canvas.Circle
	checkBtn  *widget.Button
	title     *widget.Label
	meta      *widget.Label
	editBtn   *widget.Button
	deleteBtn *widget.Button
}

func newTodoRow(s *appState) *todoRow {
	r := &todoRow{s: s}

	r.bg = canvas.NewRectangle(theme.Color(palette.ColorNameSurface))
	r.bg.CornerRadius = 8
	r.priDot = canvas.NewCircle(theme.Color(palette.ColorNamePriorityLow))
	r.priDot.Resize(fyne.NewSize(12, 12))

	r.checkBtn = widget.NewButtonWithIcon("", theme.RadioButtonIcon(), func() {
		s.svc.ToggleTodo(r.item.ID)
		s.refresh()
	})
	r.checkBtn.Importance = widget.LowImportance

	r.title = widget.NewLabel("title")
	r.title.TextStyle = fyne.TextStyle{Bold: true}
	r.meta = widget.NewLabel("meta")

	r.editBtn = widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		t := r.item
		s.showTodoForm(&t)
	})
	r.editBtn.Importance = widget.LowImportance
	r.deleteBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		t := r.item
		s.confirmDelete("To-Do", t.Title, func() { s.svc.DeleteTodo(t.ID) })
	})
	r.deleteBtn.Importance = widget.DangerImportance

	r.ExtendBaseWidget(r)
	return r
}

func (r *todoRow) CreateRenderer() fyne.WidgetRenderer {
	left := container.NewHBox(container.NewCenter(r.priDot), r.checkBtn)
	right := container.NewHBox(r.editBtn, r.deleteBtn)
	content := container.NewBorder(nil, nil, left, right, container.NewVBox(r.title, r.meta))
	return widget.NewSimpleRenderer(container.NewStack(r.bg, container.NewPadded(content)))
}

func (r *todoRow) bind(t todo.Todo) {
	r.item = t

	r.priDot.FillColor = theme.Color(palette.PriorityColorName(t.Priority))
	r.priDot.Refresh()

	if t.Completed {
		r.checkBtn.SetIcon(theme.ConfirmIcon())
		r.title.TextStyle = fyne.TextStyle{Italic: true}
	} else {
		r.checkBtn.SetIcon(theme.RadioButtonIcon())
		r.title.TextStyle = fyne.TextStyle{Bold: true}
	}
	r.bg.FillColor = theme.Color(palette.RowColorName(t.Completed, false))
	r.bg.Refresh()
	r.title.SetText(t.Title)

	meta := []string{t.Recurrence.Label(), t.Priority.String() + " priority", "created " + humanize.Time(t.CreatedAt)}
	if t.Description != "" {
		meta = append([]string{t.Description}, meta...)
	}
	r.meta.SetText(strings.Join(meta, " · "))
}

// ── To-do form ────────────────────────────────────────────────────────────────

func (s *appState) showTodoForm(existing *todo.Todo) {
	titleEntry := widget.NewEntry()
	titleEntry.SetPlaceHolder("To-do title…")

	descEntry := widget.NewMultiLineEntry()
	descEntry.SetPlaceHolder("Optional description…")
	descEntry.SetMinRowsVisible(3)

	prioritySelect := widget.NewSelect([]string{"Low", "Medium", "High"}, nil)
	prioritySelect.SetSelected("Low")

	recSelect := widget.NewSelect(recurrenceLabels()[1:], nil)
	recSelect.SetSelected(todo.RecurrenceNone.Label())

	doneCheck := widget.NewCheck("Completed", nil)

	if existing != nil {
		titleEntry.SetText(existing.Title)
		descEntry.SetText(existing.Description)
		prioritySelect.SetSelected(existing.Priority.String())
		recSelect.SetSelected(existing.Recurrence.Label())
		doneCheck.SetChecked(existing.Completed)
	}

	form := widget.NewForm(
		widget.NewFormItem("Title *", titleEntry),
		widget.NewFormItem("Description", descEntry),
		widget.NewFormItem("Priority", prioritySelect),
		widget.NewFormItem("Repeats", recSelect),
		widget.NewFormItem("", doneCheck),
	)

	label := "Add To-Do"
	if existing != nil {
		label = "Edit To-Do"
	}

	dialog.ShowCustomConfirm(label, "Save", "Cancel", form, func(ok bool) {
		if !ok {
			return
		}
		pri, _ := todo.ParsePriority(prioritySelect.Selected)
		rec := recurrenceFromLabel(recSelect.Selected)

		var err error
		if existing == nil {
			_, err = s.svc.AddTodo(todo.TodoDraft{
				Title:       titleEntry.Text,
				Description: descEntry.Text,
				Completed:   doneCheck.Checked,
				Priority:    pri,
				Recurrence:  rec,
			})
		} else {
			t := *existing
			t.Title = titleEntry.Text
			t.Description = descEntry.Text
			t.Priority = pri
			t.Recurrence = rec
			t.Completed = doneCheck.Checked
			err = s.svc.UpdateTodo(t)
		}
		if err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		s.refresh()
	}, s.win)
}
