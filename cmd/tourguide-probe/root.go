package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/museumguide/internal/probe"
)

// errProbeFailed is returned when at least one endpoint did not answer with success.
var errProbeFailed = errors.New("probe failed")

type probeFlags struct {
	url     string
	timeout time.Duration
	workers int
}

func (f *probeFlags) config() probe.Config {
	return probe.Config{BaseURL: f.url, Timeout: f.timeout, Workers: f.workers}
}

func newRootCommand() *cobra.Command {
	flags := &probeFlags{}

	rootCmd := &cobra.Command{
		Use:           "tourguide-probe",
		Short:         "Ask a running museum guide service about a painting",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.url, "url", probe.DefaultBaseURL, "Base URL of the service")
	rootCmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", probe.DefaultTimeout, "Per-request timeout")
	rootCmd.PersistentFlags().IntVar(&flags.workers, "workers", probe.DefaultWorkers, "Concurrent requests")

	rootCmd.AddCommand(newFactsCommand(flags))
	rootCmd.AddCommand(newHealthCommand(flags))
	return rootCmd
}

func newFactsCommand(flags *probeFlags) *cobra.Command {
	var asJSON bool
	var only []string

	cmd := &cobra.Command{
		Use:   "facts <painting>",
		Short: "Query every fact endpoint for a painting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoints := probe.Endpoints()
			if len(only) > 0 {
				endpoints = only
			}
			results := probe.Run(cmd.Context(), flags.config(), args[0], endpoints)

			out := cmd.OutOrStdout()
			if asJSON {
				fmt.Fprint(out, probe.RenderJSON(results))
			} else {
				fmt.Fprintln(out, probe.RenderTable(results))
			}
			if n := probe.Failed(results); n > 0 {
				return fmt.Errorf("%w: %d of %d endpoints", errProbeFailed, n, len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw response envelopes")
	cmd.Flags().StringSliceVar(&only, "endpoint", nil, "Only query these endpoints")
	return cmd
}

func newHealthCommand(flags *probeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the service health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()
			status, err := probe.NewClient(flags.config()).Health(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", flags.url, status)
			return nil
		},
	}
}
