// Package testsupport holds helpers shared by the testscript suites.
package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rogpeppe/go-internal/testscript"
)

// SetupScriptEnv points HOME, the database and the config file into the
// script's work directory so runs never touch real user data.
func SetupScriptEnv(env *testscript.Env) error {
	homeDir := filepath.Join(env.WorkDir, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("TASKFLOW_DB", filepath.Join(env.WorkDir, "taskflow.db"))
	env.Setenv("TASKFLOW_CONFIG", filepath.Join(env.WorkDir, "config.toml"))
	env.Setenv("TASKFLOW_LOG_LEVEL", "warn")
	env.Setenv("NO_COLOR", "1")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdSleep pauses the script for the given duration.
func CmdSleep(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("sleep does not support negation")
	}
	if len(args) != 1 {
		ts.Fatalf("usage: sleep DURATION")
	}

	d, err := time.ParseDuration(args[0])
	ts.Check(err)
	time.Sleep(d)
}

// Commands returns the custom script commands.
func Commands() map[string]func(*testscript.TestScript, bool, []string) {
	return map[string]func(*testscript.TestScript, bool, []string){
		"envset": CmdEnvSet,
		"sleep":  CmdSleep,
	}
}
