package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/postmarkgo/postmark/internal/config"
	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/postmarkgo/postmark/pkg/postmark/instrument"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// options contains the flags shared by all the subcommands.
type options struct {
	// configPath is the config file path. When empty, we use the default.
	configPath string

	// metrics controls whether to print the metrics to stderr.
	metrics bool

	// stderr is where we print the metrics.
	stderr io.Writer

	// stdout is where we print the responses.
	stdout io.Writer

	// verbose enables debug logging.
	verbose bool
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "postmark",
		Short:         "Send email and manage templates using the Postmark API",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Set a custom config file path")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose log output")
	flags.BoolVar(&opts.metrics, "metrics", false, "Print the API call metrics to stderr")

	root.AddCommand(
		newSendCommand(opts),
		newSendTemplateCommand(opts),
		newTemplateCommand(opts),
		newServerCommand(opts),
		newSuppressionsCommand(opts),
		newDeliveryStatsCommand(opts),
	)
	return root
}

// call loads the config, invokes the API using fn, and prints the
// response as JSON. A response reporting a nonzero ErrorCode is an error.
func call[Response any](ctx context.Context, opts *options,
	fn func(ctx context.Context, txp postmark.Transport) (Response, error)) (Response, error) {
	var zero Response
	c, err := config.Load(opts.configPath)
	if err != nil {
		return zero, err
	}
	httpTxp, err := c.NewTransport(log.Log)
	if err != nil {
		return zero, err
	}
	var txp postmark.Transport = httpTxp
	registry := prometheus.NewRegistry()
	if opts.metrics {
		txp = instrument.NewTransport(txp, registry)
	}

	resp, err := fn(ctx, txp)
	if opts.metrics {
		if err := dumpMetrics(opts.stderr, registry); err != nil {
			log.Warnf("cannot print metrics: %s", err.Error())
		}
	}
	if err != nil {
		return zero, errors.Wrap(err, "calling the API")
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return zero, errors.Wrap(err, "printing the response")
	}
	data = append(data, '\n')
	if _, err := opts.stdout.Write(data); err != nil {
		return zero, err
	}

	if carrier, ok := any(resp).(interface{ Err() error }); ok {
		if err := carrier.Err(); err != nil {
			return zero, err
		}
	}
	return resp, nil
}

// dumpMetrics writes the metrics in the prometheus text format.
func dumpMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}
