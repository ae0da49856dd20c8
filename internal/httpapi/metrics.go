package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MihkelHunter/taskflow/internal/analytics"
	"github.com/MihkelHunter/taskflow/internal/todo"
)

// Collector exports the analytics summary as gauges, recomputed per scrape.
type Collector struct {
	svc *todo.Service

	tasks          *prometheus.Desc
	todos          *prometheus.Desc
	todoRecurrence *prometheus.Desc
	completionRate *prometheus.Desc
	avgProgress    *prometheus.Desc
}

func NewCollector(svc *todo.Service) *Collector {
	return &Collector{
		svc: svc,
		tasks: prometheus.NewDesc("taskflow_tasks",
			"Number of tasks by status.", []string{"status"}, nil),
		todos: prometheus.NewDesc("taskflow_todos",
			"Number of todos by completion state.", []string{"state"}, nil),
		todoRecurrence: prometheus.NewDesc("taskflow_todos_by_recurrence",
			"Number of todos by recurrence.", []string{"recurrence"}, nil),
		completionRate: prometheus.NewDesc("taskflow_completion_rate_percent",
			"Completion rate in percent.", []string{"kind"}, nil),
		avgProgress: prometheus.NewDesc("taskflow_task_average_progress_percent",
			"Mean task progress in percent.", nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.tasks
	ch <- c.todos
	ch <- c.todoRecurrence
	ch <- c.completionRate
	ch <- c.avgProgress
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := analytics.Summarize(c.svc.Tasks(), c.svc.Todos())

	for _, st := range todo.Statuses() {
		ch <- prometheus.MustNewConstMetric(c.tasks, prometheus.GaugeValue, float64(s.Tasks.StatusCount(st)), string(st))
	}
	ch <- prometheus.MustNewConstMetric(c.todos, prometheus.GaugeValue, float64(s.Todos.Completed), "completed")
	ch <- prometheus.MustNewConstMetric(c.todos, prometheus.GaugeValue, float64(s.Todos.Pending), "pending")
	for _, rec := range todo.Recurrences() {
		label := string(rec)
		if rec == todo.RecurrenceNone {
			label = "none"
		}
		ch <- prometheus.MustNewConstMetric(c.todoRecurrence, prometheus.GaugeValue, float64(s.Todos.ByRecurrence.Count(rec)), label)
	}
	ch <- prometheus.MustNewConstMetric(c.completionRate, prometheus.GaugeValue, s.Tasks.CompletionRate, "tasks")
	ch <- prometheus.MustNewConstMetric(c.completionRate, prometheus.GaugeValue, s.Todos.CompletionRate, "todos")
	ch <- prometheus.MustNewConstMetric(c.completionRate, prometheus.GaugeValue, s.Overall.CompletionRate, "overall")
	ch <- prometheus.MustNewConstMetric(c.avgProgress, prometheus.GaugeValue, s.Tasks.AverageProgress)
}
