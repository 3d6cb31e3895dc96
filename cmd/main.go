package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"seedsynth/core/assembly"
	"seedsynth/core/corpus"
	"seedsynth/core/inference"
	"seedsynth/infra/client/openai"
	"seedsynth/infra/config"
	"seedsynth/infra/journal"
	"seedsynth/infra/metrics"
	"seedsynth/infra/utils/logger"
)

type options struct {
	protocol   string
	input      string
	output     string
	configPath string
	logLevel   string
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "seedsynth",
	Short: "Synthesizes fuzzing seed corpora for a network protocol",
	Long: `seedsynth asks a language model for the message structure of a protocol,
its client message types and type sequences, then writes one binary seed
per sequence.

Example: seedsynth -p SSH -o results
Seeds are written to results/SSH/<timestamp>_<run id>/seed_<i>.raw.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          synthesize,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.protocol, "protocol", "p", "", "protocol name, e.g. SSH")
	flags.StringVarP(&opts.input, "input", "i", "", "path to an existing corpus (recorded in the run only)")
	flags.StringVarP(&opts.output, "output", "o", "results", "output directory")
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	_ = rootCmd.MarkFlagRequired("protocol")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

// synthesize - ошибки до старта пайплайна завершают программу с ненулевым кодом,
// всё, что случилось внутри запуска, попадает только в отчет
func synthesize(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = opts.logLevel
	}
	if err := logger.SetLevel(level); err != nil {
		return err
	}

	run, err := newRun(opts.protocol, opts.input, opts.output, time.Now(), uuid.New())
	if err != nil {
		return err
	}
	pool, err := corpus.New(run.Dir)
	if err != nil {
		return err
	}
	results, err := journal.Open(run, journal.PathIn(run.Dir))
	if err != nil {
		return err
	}
	defer func() {
		if err := results.Close(); err != nil {
			logger.Errorf(err, "failed to close journal %s", results.Path())
		}
	}()

	apiKey := os.Getenv(cfg.Model.APIKeyEnv)
	if apiKey == "" {
		logger.Warnf("%s is not set, model requests go without an api key", cfg.Model.APIKeyEnv)
	}
	engine := inference.New(openai.New(cfg.Model.BaseURL, apiKey, cfg.Model.Name), results, cfg.Stages)
	pipeline := assembly.New(engine, pool)

	logger.Infof("[%s] run %s started with model %s, output %s", run.Protocol, run.ID, cfg.Model.Name, run.Dir)

	ctx := cmd.Context()
	serveCtx, stopServe := context.WithCancel(ctx)
	defer stopServe()
	g, gctx := errgroup.WithContext(serveCtx)
	g.Go(func() error {
		return metrics.Serve(gctx, cfg.MetricsAddr)
	})

	var report assembly.Report
	g.Go(func() error {
		defer stopServe()
		report = pipeline.Run(ctx, run)
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Errorf(errors.WithMessage(err, "metrics"), "run continued without metrics endpoint")
	}

	logReport(report, engine.Latency())
	return nil
}
