package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/teenjuna/handoff"
	"github.com/teenjuna/handoff/internal/journal"
	"github.com/teenjuna/handoff/pace"
	"github.com/teenjuna/handoff/worker"
)

func newRunCmd() *cobra.Command {
	var (
		file   string
		policy string
		flags  = defaultRunConfig()
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run producers and consumers against one shared buffer",
		Long: `Run starts producers and consumers against one shared buffer and waits for them.

Every producer puts --items items. The items of all producers are split between the
consumers, so a run ends on its own unless --timeout or an interrupt stops it first.
Workers stopped that way end cleanly and are counted in the summary.

Run file (YAML):
  policy: fixed:4
  producers: 2
  consumers: 3
  items: 100
  pace: 10ms
  jitter: 0.2
  timeout: 30s
  journal: run.db
  metrics: true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultRunConfig()
			if file != "" {
				loaded, err := LoadRunConfig(file)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			changed := cmd.Flags().Changed
			if changed("policy") {
				p, err := handoff.ParsePolicy(policy)
				if err != nil {
					return err
				}
				cfg.Policy = p
			}
			if changed("producers") {
				cfg.Producers = flags.Producers
			}
			if changed("consumers") {
				cfg.Consumers = flags.Consumers
			}
			if changed("items") {
				cfg.Items = flags.Items
			}
			if changed("pace") {
				cfg.Pace = flags.Pace
			}
			if changed("jitter") {
				cfg.Jitter = flags.Jitter
			}
			if changed("timeout") {
				cfg.Timeout = flags.Timeout
			}
			if changed("journal") {
				cfg.Journal = flags.Journal
			}
			if changed("metrics") {
				cfg.Metrics = flags.Metrics
			}
			if err := cfg.validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runBuffer(ctx, cmd.OutOrStdout(), slog.Default(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "YAML run file")
	f.StringVar(&policy, "policy", flags.Policy.String(), "capacity policy: single, fixed:N or unbounded")
	f.IntVarP(&flags.Producers, "producers", "p", flags.Producers, "number of producers")
	f.IntVarP(&flags.Consumers, "consumers", "c", flags.Consumers, "number of consumers")
	f.IntVarP(&flags.Items, "items", "n", flags.Items, "items put by every producer")
	f.DurationVar(&flags.Pace, "pace", flags.Pace, "pause between the calls of a worker")
	f.Float64Var(&flags.Jitter, "jitter", flags.Jitter, "random share of the pause, in [0, 1)")
	f.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "stop the run after this long (0 = no limit)")
	f.StringVar(&flags.Journal, "journal", flags.Journal, "record consumed items in this SQLite file")
	f.BoolVar(&flags.Metrics, "metrics", flags.Metrics, "print buffer metrics after the run")

	return cmd
}

func runBuffer(ctx context.Context, out io.Writer, logger *slog.Logger, cfg RunConfig) (err error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	registry := prometheus.NewRegistry()
	buffer, err := handoff.New[*handoff.Item](cfg.Policy, handoff.WithPrometheus(handoff.Prometheus(registry)))
	if err != nil {
		return err
	}

	options := []worker.Option{
		worker.WithProducers(cfg.Producers),
		worker.WithConsumers(cfg.Consumers),
		worker.WithItems(cfg.Items),
		worker.WithLogger(logger),
	}
	if cfg.Pace > 0 {
		options = append(options, worker.WithPacer(pace.Fixed(cfg.Pace).WithJitter(cfg.Jitter)))
	}

	var j *journal.Journal
	if cfg.Journal != "" {
		j, err = journal.New(journal.WithFile(cfg.Journal))
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer func() {
			if cerr := j.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close journal: %w", cerr))
			}
		}()
		options = append(options, worker.WithProcess(
			func(ctx context.Context, consumer string, item *handoff.Item) error {
				logger.DebugContext(ctx, "processed item", "worker", consumer, "item", item.String())
				return j.Record(consumer, item)
			},
		))
	}

	logger.InfoContext(ctx, "buffer created", "policy", cfg.Policy.String())

	report, err := worker.Run(ctx, buffer, options...)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	fmt.Fprintf(out, "policy:    %s\n", cfg.Policy)
	fmt.Fprintf(out, "produced:  %d\n", report.Produced)
	fmt.Fprintf(out, "consumed:  %d\n", report.Consumed)
	fmt.Fprintf(out, "left:      %d\n", buffer.Len())
	fmt.Fprintf(out, "stopped:   %d\n", report.Stopped)
	fmt.Fprintf(out, "elapsed:   %s\n", report.Elapsed.Round(time.Millisecond))

	if j != nil {
		stats, err := j.Stats()
		if err != nil {
			return fmt.Errorf("journal stats: %w", err)
		}
		fmt.Fprintf(out, "journaled: %d\n", stats.Items)
	}

	if cfg.Metrics {
		if err := writeMetrics(out, registry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

func writeMetrics(out io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(out, family); err != nil {
			return err
		}
	}
	return nil
}
