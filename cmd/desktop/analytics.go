package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/MihkelHunter/taskflow/internal/analytics"
	"github.com/MihkelHunter/taskflow/internal/todo"
)

// statLine is a label with a bar showing its share of the whole.
type statLine struct {
	label *widget.Label
	bar   *widget.ProgressBar
}

func newStatLine() *statLine {
	l := &statLine{label: widget.NewLabel(""), bar: widget.NewProgressBar()}
	l.bar.Max = 100
	return l
}

func (l *statLine) object() fyne.CanvasObject {
	return container.NewGridWithColumns(2, l.label, l.bar)
}

func (l *statLine) set(text string, pct float64) {
	l.label.SetText(text)
	l.bar.SetValue(pct)
}

type analyticsView struct {
	content fyne.CanvasObject

	taskTotals  *widget.Label
	taskStatus  map[todo.Status]*statLine
	taskAvg     *statLine
	taskPri     map[todo.Priority]*statLine
	todoTotals  *widget.Label
	todoDone    *statLine
	todoRec     map[todo.Recurrence]*statLine
	todoPri     map[todo.Priority]*statLine
	overall     *widget.Label
	overallRate *statLine
}

func newAnalyticsView() *analyticsView {
	v := &analyticsView{
		taskTotals:  widget.NewLabel(""),
		taskStatus:  map[todo.Status]*statLine{},
		taskAvg:     newStatLine(),
		taskPri:     map[todo.Priority]*statLine{},
		todoTotals:  widget.NewLabel(""),
		todoDone:    newStatLine(),
		todoRec:     map[todo.Recurrence]*statLine{},
		todoPri:     map[todo.Priority]*statLine{},
		overall:     widget.NewLabel(""),
		overallRate: newStatLine(),
	}

	tasks := container.NewVBox(v.taskTotals)
	for _, st := range todo.Statuses() {
		v.taskStatus[st] = newStatLine()
		tasks.Add(v.taskStatus[st].object())
	}
	tasks.Add(v.taskAvg.object())
	tasks.Add(widget.NewSeparator())
	for _, p := range todo.Priorities() {
		v.taskPri[p] = newStatLine()
		tasks.Add(v.taskPri[p].object())
	}

	todos := container.NewVBox(v.todoTotals, v.todoDone.object())
	for _, r := range todo.Recurrences() {
		v.todoRec[r] = newStatLine()
		todos.Add(v.todoRec[r].object())
	}
	todos.Add(widget.NewSeparator())
	for _, p := range todo.Priorities() {
		v.todoPri[p] = newStatLine()
		todos.Add(v.todoPri[p].object())
	}

	v.content = container.NewVBox(
		widget.NewCard("Overall", "", container.NewVBox(v.overall, v.overallRate.object())),
		container.NewGridWithColumns(2,
			widget.NewCard("Tasks", "", tasks),
			widget.NewCard("To-Dos", "", todos),
		),
	)
	return v
}

func (v *analyticsView) update(s analytics.Summary) {
	pct := analytics.FormatPercent

	v.overall.SetText(fmt.Sprintf("%d of %d items completed", s.Overall.CompletedItems, s.Overall.TotalItems))
	v.overallRate.set("Completion rate "+pct(s.Overall.CompletionRate), s.Overall.CompletionRate)

	v.taskTotals.SetText(fmt.Sprintf("%d tasks · %s completed", s.Tasks.Total, pct(s.Tasks.CompletionRate)))
	for st, line := range v.taskStatus {
		n := s.Tasks.StatusCount(st)
		line.set(fmt.Sprintf("%s: %d", st.Label(), n), s.Tasks.Share(n))
	}
	v.taskAvg.set("Average progress "+pct(s.Tasks.AverageProgress), s.Tasks.AverageProgress)
	for p, line := range v.taskPri {
		n := s.Tasks.ByPriority.Count(p)
		line.set(fmt.Sprintf("%s priority: %d", p, n), s.Tasks.Share(n))
	}

	v.todoTotals.SetText(fmt.Sprintf("%d to-dos · %d pending", s.Todos.Total, s.Todos.Pending))
	v.todoDone.set(fmt.Sprintf("Completed: %d (%s)", s.Todos.Completed, pct(s.Todos.CompletionRate)), s.Todos.CompletionRate)
	for r, line := range v.todoRec {
		n := s.Todos.ByRecurrence.Count(r)
		line.set(fmt.Sprintf("%s: %d", r.Label(), n), s.Todos.Share(n))
	}
	for p, line := range v.todoPri {
		n := s.Todos.ByPriority.Count(p)
		line.set(fmt.Sprintf("%s priority: %d", p, n), s.Todos.Share(n))
	}
}
