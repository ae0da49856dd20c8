// Package main is the TaskFlow desktop app.
package main

import (
	"context"
	"fmt"
	"image/color"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/MihkelHunter/taskflow/internal/analytics"
	"github.com/MihkelHunter/taskflow/internal/config"
	"github.com/MihkelHunter/taskflow/internal/focus"
	"github.com/MihkelHunter/taskflow/internal/logging"
	"github.com/MihkelHunter/taskflow/internal/palette"
	"github.com/MihkelHunter/taskflow/internal/store"
	"github.com/MihkelHunter/taskflow/internal/todo"
)

// ── App state ────────────────────────────────────────────────────────────────

type appState struct {
	svc    *todo.Service
	ctrl   *focus.Controller
	logger *log.Logger
	win    fyne.Window
	ctx    context.Context

	query      string
	taskFilter string // "" for all, otherwise a todo.Status
	todoFilter string // "all" | "active" | "done"
	recFilter  string // "All" or a recurrence label

	tasks []todo.Task
	todos []todo.Todo

	taskList   *widget.List
	todoList   *widget.List
	statsLabel *widget.Label
	stats      *analyticsView
	focusView  *focusPanel
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.Log.Level)

	st, err := store.New(cfg.Storage.Path)
	if err != nil {
		logger.Fatal("open store", "err", err)
	}
	svc := todo.NewService(st, todo.WithLogger(logger))
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := app.New()
	a.Settings().SetTheme(palette.NewTheme())

	win := a.NewWindow("TaskFlow")
	win.Resize(fyne.NewSize(860, 680))
	win.CenterOnScreen()

	s := &appState{svc: svc, logger: logger, win: win, ctx: ctx, todoFilter: "all", recFilter: "All"}
	s.ctrl, err = focus.NewController(focus.RealClock(), cfg.Focus.Minutes,
		focus.WithLogger(logger),
		focus.OnTick(func(ev focus.Event) {
			fyne.Do(func() { s.focusView.update(ev, s.activeTitle()) })
		}),
		focus.OnComplete(func(ev focus.Event) {
			fyne.Do(func() { s.finishFocus(ev) })
		}),
	)
	if err != nil {
		logger.Fatal("focus timer", "err", err)
	}

	win.SetContent(s.buildUI())
	s.refresh()

	if w, err := store.NewWatcher(cfg.Storage.Path, store.DefaultDebounce, logger); err != nil {
		logger.Warn("live reload disabled", "err", err)
	} else {
		w.Start(ctx, func() {
			svc.Reload()
			fyne.Do(s.refresh)
		})
	}

	win.ShowAndRun()
	s.ctrl.Deactivate()
}

// ── Build UI ─────────────────────────────────────────────────────────────────

func (s *appState) buildUI() fyne.CanvasObject {
	title := canvas.NewText("  ✓  TaskFlow", color.White)
	title.TextSize = 20
	title.TextStyle = fyne.TextStyle{Bold: true}

	searchEntry := widget.NewEntry()
	searchEntry.SetPlaceHolder("Search tasks and to-dos…")
	searchEntry.OnChanged = func(q string) {
		s.query = q
		s.refresh()
	}

	header := container.NewBorder(nil, nil, title, nil, container.NewPadded(searchEntry))
	headerBG := canvas.NewRectangle(theme.Color(palette.ColorNameSurface))
	headerStack := container.NewStack(headerBG, container.NewPadded(header))

	s.stats = newAnalyticsView()
	tabs := container.NewAppTabs(
		container.NewTabItem("Tasks", s.buildTasksTab()),
		container.NewTabItem("To-Dos", s.buildTodosTab()),
		container.NewTabItem("Analytics", container.NewVScroll(s.stats.content)),
	)

	s.focusView = s.newFocusPanel()
	s.statsLabel = widget.NewLabel("")
	footerBG := canvas.NewRectangle(theme.Color(palette.ColorNameSurface))
	footer := container.NewVBox(s.focusView.content, container.NewCenter(s.statsLabel))
	footerStack := container.NewStack(footerBG, container.NewPadded(footer))

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
	ui := container.NewBorder(headerStack, footerStack, nil, nil, tabs)
	return container.NewStack(bg, ui)
}

// ── Actions ───────────────────────────────────────────────────────────────────

// refresh re-reads both collections and redraws every view. It must run on
// the fyne goroutine.
func (s *appState) refresh() {
	allTasks := s.svc.Tasks()
	allTodos := s.svc.Todos()

	s.tasks = filterTasks(allTasks, s.query, s.taskFilter)
	s.todos = filterTodos(allTodos, s.query, s.todoFilter, s.recFilter)
	s.taskList.Refresh()
	s.todoList.Refresh()

	summary := analytics.Summarize(allTasks, allTodos)
	s.stats.update(summary)
	s.statsLabel.SetText(fmt.Sprintf("%d / %d items completed (%s)",
		summary.Overall.CompletedItems, summary.Overall.TotalItems,
		analytics.FormatPercent(summary.Overall.CompletionRate)))

	if id := s.ctrl.Active(); id != "" {
		if _, ok := s.svc.Task(id); !ok {
			s.ctrl.Deactivate()
		}
	}
	s.focusView.update(s.ctrl.Snapshot(), s.activeTitle())
}

func (s *appState) confirmDelete(kind, title string, del func()) {
	dialog.ShowConfirm("Delete "+kind,
		fmt.Sprintf("Delete \"%s\"?", title),
		func(ok bool) {
			if ok {
				del()
				s.refresh()
			}
		}, s.win)
}
