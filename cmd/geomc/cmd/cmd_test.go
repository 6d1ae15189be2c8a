package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/sugawarayuuta/sonnet"

	"github.com/msto63/geomc/internal/engine"
	"github.com/msto63/geomc/internal/history"
	"github.com/msto63/geomc/internal/trial"
	"github.com/msto63/geomc/pkg/core/config"
)

func smallConfig(kernel string) *config.Config {
	cfg := config.Default()
	cfg.Simulation.Kernel = kernel
	cfg.Simulation.Trials = 1000
	cfg.Simulation.BatchSize = 300
	cfg.Simulation.Workers = 2
	cfg.Simulation.Seed = 7
	cfg.Progress.Mode = "none"
	return cfg
}

func testCommand(out io.Writer) *cobra.Command {
	c := &cobra.Command{}
	c.SetOut(out)
	c.SetErr(io.Discard)
	return c
}

func TestSimulate_PrintsLine(t *testing.T) {
	tests := []struct {
		kernel string
		digits int
	}{
		{"integral", 12},
		{"nearest-side", 10},
		{"side-quadratic", 10},
	}

	for _, tt := range tests {
		t.Run(tt.kernel, func(t *testing.T) {
			var buf bytes.Buffer
			if err := simulate(testCommand(&buf), smallConfig(tt.kernel), false); err != nil {
				t.Fatalf("simulate() error = %v", err)
			}

			pattern := regexp.MustCompile(`^Probability after 1000 trials: [01]\.\d{` + strconv.Itoa(tt.digits) + `}\n$`)
			if !pattern.MatchString(buf.String()) {
				t.Errorf("output = %q", buf.String())
			}
		})
	}
}

func TestSimulate_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := simulate(testCommand(&buf), smallConfig("nearest-side"), true); err != nil {
		t.Fatalf("simulate() error = %v", err)
	}

	var got map[string]interface{}
	if err := sonnet.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if got["kernel"] != "nearest-side" {
		t.Errorf("kernel = %v", got["kernel"])
	}
	if got["seed"] != float64(7) || got["trials"] != float64(1000) || got["batches"] != float64(4) {
		t.Errorf("seed/trials/batches = %v/%v/%v", got["seed"], got["trials"], got["batches"])
	}
	if line, _ := got["line"].(string); !strings.HasPrefix(line, "Probability after 1000 trials: ") {
		t.Errorf("line = %q", line)
	}
}

func TestSimulate_LogFile(t *testing.T) {
	cfg := smallConfig("integral")
	cfg.Logging.Format = "json"
	cfg.Logging.File = filepath.Join(t.TempDir(), "run.log")

	var buf bytes.Buffer
	if err := simulate(testCommand(&buf), cfg, false); err != nil {
		t.Fatalf("simulate() error = %v", err)
	}

	data, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("run log not written: %v", err)
	}
	if !strings.Contains(string(data), "Starting run") || !strings.Contains(string(data), "Run completed") {
		t.Errorf("run log = %s", data)
	}
}

func TestSimulate_Reproducible(t *testing.T) {
	var a, b bytes.Buffer
	if err := simulate(testCommand(&a), smallConfig("side-quadratic"), false); err != nil {
		t.Fatal(err)
	}
	if err := simulate(testCommand(&b), smallConfig("side-quadratic"), false); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("same seed gave %q and %q", a.String(), b.String())
	}
}

func TestSimulate_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown kernel", func(c *config.Config) { c.Simulation.Kernel = "buffon" }},
		{"zero trials", func(c *config.Config) { c.Simulation.Trials = 0 }},
		{"zero batch size", func(c *config.Config) { c.Simulation.BatchSize = 0 }},
		{"negative workers", func(c *config.Config) { c.Simulation.Workers = -1 }},
		{"unknown progress mode", func(c *config.Config) { c.Progress.Mode = "fancy" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig("integral")
			tt.mutate(cfg)

			var buf bytes.Buffer
			if err := simulate(testCommand(&buf), cfg, false); err == nil {
				t.Error("simulate() should fail")
			}
			if buf.Len() != 0 {
				t.Errorf("no result expected, got %q", buf.String())
			}
		})
	}
}

func TestSimulate_ZeroCountsFromFileFailFast(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero trials", "[simulation]\ntrials = 0\n"},
		{"zero batch size", "[simulation]\nbatch_size = 0\n"},
		{"zero workers", "[simulation]\ntrials = 10\nbatch_size = 5\nworkers = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "geomc.toml")
			if err := os.WriteFile(path, []byte(tt.content+"[progress]\nmode = \"none\"\n"), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, err := config.LoadOrDefault(path)
			if err != nil {
				t.Fatalf("LoadOrDefault() error = %v", err)
			}

			var buf bytes.Buffer
			err = simulate(testCommand(&buf), cfg, false)
			if !errors.Is(err, engine.ErrInvalidConfig) {
				t.Errorf("simulate() error = %v, want ErrInvalidConfig", err)
			}
			if buf.Len() != 0 {
				t.Errorf("no result expected, got %q", buf.String())
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	c := &cobra.Command{}
	c.Flags().StringVarP(&runKernel, "kernel", "k", "", "")
	c.Flags().Int64VarP(&runTrials, "trials", "n", 0, "")
	c.Flags().Int64VarP(&runBatchSize, "batch-size", "b", 0, "")
	c.Flags().IntVarP(&runWorkers, "workers", "w", 0, "")
	c.Flags().Uint64Var(&runSeed, "seed", 0, "")
	c.Flags().StringVar(&runProgress, "progress", "", "")

	if err := c.Flags().Parse([]string{"--trials", "5", "-k", "integral", "--seed", "9"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	applyFlags(c, cfg)

	if cfg.Simulation.Trials != 5 || cfg.Simulation.Kernel != "integral" || cfg.Simulation.Seed != 9 {
		t.Errorf("flags not applied: %+v", cfg.Simulation)
	}
	if cfg.Simulation.BatchSize != config.DefaultBatchSize {
		t.Errorf("unset flag overrode BatchSize: %d", cfg.Simulation.BatchSize)
	}
	if cfg.Progress.Mode != "plain" {
		t.Errorf("unset flag overrode Progress.Mode: %s", cfg.Progress.Mode)
	}
}

func TestKernelsCommand(t *testing.T) {
	var buf bytes.Buffer
	kernelsCmd.SetOut(&buf)
	defer kernelsCmd.SetOut(nil)

	kernelsCmd.Run(kernelsCmd, nil)

	if !strings.HasPrefix(buf.String(), "Verfügbare Kernel\n=================\n") {
		t.Errorf("header = %q", buf.String())
	}
	for _, k := range trial.Kernels() {
		if !strings.Contains(buf.String(), k.String()) {
			t.Errorf("kernel %s missing from:\n%s", k, buf.String())
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)

	if !strings.HasPrefix(buf.String(), "geomc v"+Version) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSimulate_RecordsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	for _, kernel := range []string{"nearest-side", "integral"} {
		cfg := smallConfig(kernel)
		cfg.History.Path = dbPath
		if err := simulate(testCommand(io.Discard), cfg, false); err != nil {
			t.Fatalf("simulate(%s) error = %v", kernel, err)
		}
	}

	store, err := history.NewSQLiteRunStore(history.SQLiteConfig{Path: dbPath})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	runs, err := store.Query(context.Background(), history.RunFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("recorded %d runs, want 2", len(runs))
	}
	for _, r := range runs {
		if r.Seed != 7 || r.Trials != 1000 || r.BatchSize != 300 || r.Workers != 2 {
			t.Errorf("record = %+v", r)
		}
	}

	var buf bytes.Buffer
	historyKernel, historyLimit, historyPrune = "", 20, 0
	if err := showHistory(context.Background(), testCommand(&buf), store); err != nil {
		t.Fatalf("showHistory() error = %v", err)
	}
	for _, want := range []string{runs[0].RunID, runs[1].RunID, "nearest-side", "integral", "Schätzwert", "1 Läufe", "gepoolt"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("history output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestHistory_EmptyStoreAndPrune(t *testing.T) {
	store, err := history.NewSQLiteRunStore(history.SQLiteConfig{Path: filepath.Join(t.TempDir(), "runs.db")})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var buf bytes.Buffer
	historyKernel, historyLimit, historyPrune = "", 20, 0
	if err := showHistory(context.Background(), testCommand(&buf), store); err != nil {
		t.Fatalf("showHistory() error = %v", err)
	}
	if got := buf.String(); got != "Keine Läufe gespeichert.\n" {
		t.Errorf("empty history = %q", got)
	}

	buf.Reset()
	historyPrune = time.Hour
	defer func() { historyPrune = 0 }()
	if err := showHistory(context.Background(), testCommand(&buf), store); err != nil {
		t.Fatalf("showHistory(prune) error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "0 Läufe gelöscht\n") {
		t.Errorf("prune output = %q", buf.String())
	}
}

func TestCommandTexts_UseUmlauts(t *testing.T) {
	text := strings.Join([]string{
		rootCmd.Short, rootCmd.Long,
		runCmd.Short, runCmd.Long, runCmd.Flags().FlagUsages(),
		historyCmd.Short, historyCmd.Long, historyCmd.Flags().FlagUsages(),
		kernelsCmd.Short,
	}, "\n")
	for _, ascii := range []string{"ueber", "Laeufe", "aelter", "loesch", "fuehr", "Fuehr", "Schaetz", "schaetz", "naechste", "zufaellig", "Verfueg"} {
		if strings.Contains(text, ascii) {
			t.Errorf("command text contains transliteration %q", ascii)
		}
	}
	for _, want := range []string{"über", "Läufe", "älter", "löschen", "Führt", "Schätzer", "nächste", "zufällig", "Verfügbare"} {
		if !strings.Contains(text, want) {
			t.Errorf("command text missing %q", want)
		}
	}
}
