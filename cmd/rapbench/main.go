// Command rapbench runs the fake-async detector against a named workload
// and reports whether the scheduler stayed responsive.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rapbench/internal/config"
	"rapbench/internal/core"
	"rapbench/internal/detector"
	promexport "rapbench/internal/observability/prometheus"
	"rapbench/internal/progress"
	"rapbench/internal/report"
	"rapbench/internal/workload"
)

// Exit codes. A failed verdict is a successfully computed report and gets
// its own code, distinct from not being able to compute one at all.
const (
	ExitSuccess       = 0
	ExitVerdictFailed = 1
	ExitError         = 2
)

var log = logrus.New()

type detectOptions struct {
	configPath   string
	tasks        int
	blocking     int
	heartbeat    time.Duration
	stallFactor  float64
	spawnRate    int
	criteriaJSON string
	output       string
	quiet        bool
	verbose      bool
	metricsAddr  string
}

func main() {
	log.SetOutput(os.Stderr)

	root := &cobra.Command{
		Use:           "rapbench",
		Short:         "Detect fake async: measure scheduler stalls under concurrent load",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDetectCmd(), newListCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}
}

func newDetectCmd() *cobra.Command {
	opts := &detectOptions{}
	cmd := &cobra.Command{
		Use:   "detect [workload]",
		Short: "Run the detector against a named workload",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			runDetect(cmd, name, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to YAML config file")
	flags.IntVar(&opts.tasks, "tasks", 1000, "number of concurrent measured tasks")
	flags.IntVar(&opts.blocking, "blocking-tasks", 1, "number of blocking background tasks")
	flags.DurationVar(&opts.heartbeat, "heartbeat-interval", detector.DefaultHeartbeatInterval, "heartbeat monitor interval")
	flags.Float64Var(&opts.stallFactor, "stall-factor", detector.DefaultStallFactor, "stall detection threshold factor")
	flags.IntVar(&opts.spawnRate, "spawn-rate", 0, "task launches per second (0 = all at once)")
	flags.StringVar(&opts.criteriaJSON, "criteria", "", `JSON criteria overrides, e.g. '{"max_stall":"20ms"}'`)
	flags.StringVar(&opts.output, "output", "text", "output format: text, json")
	flags.BoolVar(&opts.quiet, "quiet", false, "suppress progress output during the run")
	flags.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available workloads",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Available workloads:")
			for _, name := range workload.Names() {
				entry, _ := workload.Lookup(name)
				fmt.Printf("  %-10s %s\n", name, entry.Description)
			}
		},
	}
}

func runDetect(cmd *cobra.Command, name string, opts *detectOptions) {
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, criteria, name, err := buildRunConfig(cmd, name, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}
	cfg.Criteria = criteria

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Preflight: one probe invocation, so a missing adapter dependency is
	// reported as a setup problem instead of a thousand failed tasks.
	if err := cfg.Workload.Invoke(ctx); errors.Is(err, workload.ErrUnavailable) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}

	prog := progress.New(cfg.TotalTasks, opts.quiet)
	observers := []core.Observer{prog}

	var exporter *promexport.Exporter
	if opts.metricsAddr != "" {
		exporter, err = promexport.NewExporter("rapbench", nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: registering metrics: %v\n", err)
			os.Exit(ExitError)
		}
		observers = append(observers, exporter)
		go serveMetrics(opts.metricsAddr)
	}
	cfg.Observer = core.MultiObserver(observers...)

	log.WithFields(logrus.Fields{
		"workload":       name,
		"tasks":          cfg.TotalTasks,
		"blocking_tasks": cfg.BlockingTasks,
	}).Info("starting detector run")

	prog.Start()
	result, err := detector.New().Run(ctx, cfg)
	prog.Stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}
	exporter.SetReport(result)

	if opts.output == "json" {
		report.FormatJSON(os.Stdout, result)
	} else {
		report.FormatText(os.Stdout, result)
	}

	if !result.Passed {
		os.Exit(ExitVerdictFailed)
	}
	os.Exit(ExitSuccess)
}

// buildRunConfig merges the YAML config file (if any) with command-line
// flags; explicitly set flags win. Returns the resolved workload name.
func buildRunConfig(cmd *cobra.Command, name string, opts *detectOptions) (detector.RunConfig, report.Criteria, string, error) {
	criteria := report.DefaultCriteria()
	cfg := detector.RunConfig{
		TotalTasks:           opts.tasks,
		BlockingTasks:        opts.blocking,
		HeartbeatInterval:    opts.heartbeat,
		StallThresholdFactor: opts.stallFactor,
		SpawnRate:            opts.spawnRate,
	}

	if opts.configPath != "" {
		fileCfg, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return cfg, criteria, name, err
		}
		if name == "" {
			name = fileCfg.Workload
		}
		if fileCfg.Tasks > 0 && !cmd.Flags().Changed("tasks") {
			cfg.TotalTasks = fileCfg.Tasks
		}
		if !cmd.Flags().Changed("blocking-tasks") {
			cfg.BlockingTasks = fileCfg.BlockingTasks
		}
		if fileCfg.HeartbeatInterval > 0 && !cmd.Flags().Changed("heartbeat-interval") {
			cfg.HeartbeatInterval = fileCfg.HeartbeatInterval
		}
		if fileCfg.StallThresholdFactor > 0 && !cmd.Flags().Changed("stall-factor") {
			cfg.StallThresholdFactor = fileCfg.StallThresholdFactor
		}
		if fileCfg.SpawnRate > 0 && !cmd.Flags().Changed("spawn-rate") {
			cfg.SpawnRate = fileCfg.SpawnRate
		}
		if fileCfg.Criteria != nil {
			criteria = *fileCfg.Criteria
		}
		if fileCfg.Output != "" && !cmd.Flags().Changed("output") {
			opts.output = fileCfg.Output
		}
	}

	if opts.output != "text" && opts.output != "json" {
		return cfg, criteria, name, fmt.Errorf("--output must be 'text' or 'json', got %q", opts.output)
	}

	if name == "" {
		return cfg, criteria, name, fmt.Errorf("no workload given; try 'rapbench list'")
	}
	entry, ok := workload.Lookup(name)
	if !ok {
		return cfg, criteria, name, fmt.Errorf("unknown workload %q; available: %v", name, workload.Names())
	}
	cfg.Workload = entry.Workload

	if opts.criteriaJSON != "" {
		var err error
		criteria, err = report.ParseCriteriaJSON(criteria, opts.criteriaJSON)
		if err != nil {
			return cfg, criteria, name, err
		}
	}
	return cfg, criteria, name, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.WithField("addr", addr).Debug("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Debug("metrics server stopped")
	}
}
