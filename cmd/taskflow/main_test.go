package main

import (
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/taskflow/internal/testsupport"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"taskflow": main,
	})
}

func TestRootCommandName(t *testing.T) {
	assert.Equal(t, "taskflow", rootCmd.Use)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata/script",
		Setup: testsupport.SetupScriptEnv,
		Cmds:  testsupport.Commands(),
	})
}

func TestResolveID(t *testing.T) {
	ids := []string{"abc123", "abd456", "ABE789"}

	tests := []struct {
		name    string
		ref     string
		want    int
		wantErr string
	}{
		{"exact", "abd456", 1, ""},
		{"unique prefix", "abe", 2, ""},
		{"case insensitive", "AbC", 0, ""},
		{"ambiguous", "ab", -1, "ambiguous"},
		{"missing", "zzz", -1, "not found"},
		{"empty", "  ", -1, "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveID(ids, tt.ref, "task")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0f8fad5b", shortID("0f8fad5b-d9cb-469f-a165-70867728950e"))
	assert.Equal(t, "abc", shortID("abc"))
}
