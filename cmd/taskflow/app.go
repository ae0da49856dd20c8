package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/MihkelHunter/taskflow/internal/config"
	"github.com/MihkelHunter/taskflow/internal/logging"
	"github.com/MihkelHunter/taskflow/internal/store"
	"github.com/MihkelHunter/taskflow/internal/todo"
)

// app bundles what every command needs after flags are parsed.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	svc    *todo.Service
}

func openApp() (*app, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if dbFlag != "" {
		cfg.Storage.Path = dbFlag
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}

	logger := logging.New(os.Stderr, cfg.Log.Level)
	st, err := store.New(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened store", "path", st.Path())

	return &app{
		cfg:    cfg,
		logger: logger,
		svc:    todo.NewService(st, todo.WithLogger(logger)),
	}, nil
}

func (a *app) Close() {
	if err := a.svc.Close(); err != nil {
		a.logger.Warn("close store", "err", err)
	}
}

// resolveTaskID accepts a full id or an unambiguous prefix of one.
func resolveTaskID(svc *todo.Service, ref string) (todo.Task, error) {
	tasks := svc.Tasks()
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	i, err := resolveID(ids, ref, "task")
	if err != nil {
		return todo.Task{}, err
	}
	return tasks[i], nil
}

func resolveTodoID(svc *todo.Service, ref string) (todo.Todo, error) {
	todos := svc.Todos()
	ids := make([]string, len(todos))
	for i, t := range todos {
		ids[i] = t.ID
	}
	i, err := resolveID(ids, ref, "todo")
	if err != nil {
		return todo.Todo{}, err
	}
	return todos[i], nil
}

func resolveID(ids []string, ref, kind string) (int, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return -1, fmt.Errorf("%s id is empty", kind)
	}
	for i, id := range ids {
		if strings.EqualFold(id, ref) {
			return i, nil
		}
	}
	match := -1
	for i, id := range ids {
		if strings.HasPrefix(strings.ToLower(id), ref) {
			if match >= 0 {
				return -1, fmt.Errorf("%s id %q is ambiguous", kind, ref)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%s not found: %s", kind, ref)
	}
	return match, nil
}
