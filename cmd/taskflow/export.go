package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MihkelHunter/taskflow/internal/todo"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every task and to-do to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var exportFormat string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json or yaml")
}

type exportDoc struct {
	Tasks []todo.Task `json:"tasks" yaml:"tasks"`
	Todos []todo.Todo `json:"todos" yaml:"todos"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "json" && exportFormat != "yaml" {
		return fmt.Errorf("unknown export format %q (want json or yaml)", exportFormat)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	doc := exportDoc{Tasks: a.svc.Tasks(), Todos: a.svc.Todos()}
	if doc.Tasks == nil {
		doc.Tasks = []todo.Task{}
	}
	if doc.Todos == nil {
		doc.Todos = []todo.Todo{}
	}

	if exportFormat == "yaml" {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return writeJSON(cmd.OutOrStdout(), doc)
}
