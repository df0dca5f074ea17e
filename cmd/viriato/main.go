package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/viriato-backend/internal/app"
	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/pipeline"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/temporalx/syncrun"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "viriato",
		Short: "Portuguese parliament open-data loader and linker",
		Long: `Viriato loads the Assembleia da República open-data exports
(initiatives, bodies, deputies, agenda), links agenda entries to the
initiatives they discuss, and serves the result over a read API.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(loadCmd())
	rootCmd.AddCommand(linkCmd())
	rootCmd.AddCommand(syncCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(graphSyncCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(workerCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withApp opens the app for one command and closes it afterwards.
func withApp(cmd *cobra.Command, component string, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	a, err := app.New(ctx, component)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "cli", func(ctx context.Context, a *app.App) error {
				return a.Migrate()
			})
		},
	}
}

// runStages migrates, runs the stages under one pipeline run and prints the report.
func runStages(cmd *cobra.Command, command string, stages func(r *pipeline.Runner) []string) error {
	return withApp(cmd, "cli", func(ctx context.Context, a *app.App) error {
		if err := a.Migrate(); err != nil {
			return err
		}
		r, err := a.NewRunner(ctx)
		if err != nil {
			return err
		}
		rep, err := r.Run(ctx, command, stages(r))
		if err != nil {
			return err
		}
		if err := printJSON(cmd, rep); err != nil {
			return err
		}
		if rep.Status == parliament.RunStatusFailed {
			return fmt.Errorf("%s: every stage failed", command)
		}
		return nil
	})
}

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <stage> [stage...]",
		Short: "Run one or more load stages",
		Long: fmt.Sprintf(`Run load stages in the order given. Stages: %s.

Example:
  viriato load orgaos iniciativas committee-links`, strings.Join(pipeline.LoadOrder, ", ")),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range args {
				if !pipeline.IsStage(s) {
					return fmt.Errorf("unknown stage %q", s)
				}
			}
			return runStages(cmd, "load", func(*pipeline.Runner) []string { return args })
		},
	}
}

func linkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link",
		Short: "Link agenda events to initiatives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStages(cmd, "link", func(*pipeline.Runner) []string { return []string{pipeline.StageLink} })
		},
	}
}

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run every load stage, link, validate and project the graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			viaTemporal, _ := cmd.Flags().GetBool("temporal")
			if !viaTemporal {
				return runStages(cmd, syncrun.DefaultCommand, (*pipeline.Runner).SyncStages)
			}
			return withApp(cmd, "cli", func(ctx context.Context, a *app.App) error {
				id, err := a.TriggerSync(ctx, syncrun.Input{Command: syncrun.DefaultCommand})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Started sync workflow %s\n", id)
				return nil
			})
		},
	}
	cmd.Flags().Bool("temporal", false, "enqueue the sync on the Temporal worker instead of running it here")
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [validate]",
		Short: "Print the latest run report, or validate stored agenda links",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if args[0] != "validate" {
					return fmt.Errorf("unknown report %q", args[0])
				}
				return runStages(cmd, "validate", func(*pipeline.Runner) []string { return []string{pipeline.StageValidate} })
			}
			command, _ := cmd.Flags().GetString("command")
			return withApp(cmd, "cli", func(ctx context.Context, a *app.App) error {
				run, err := a.Repos.PipelineRun.GetLatest(dbctx.Context{Ctx: ctx}, command)
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("no pipeline runs recorded")
				}
				return printJSON(cmd, run)
			})
		},
	}
	cmd.Flags().String("command", "", "only consider runs of this command (sync, load, link, ...)")
	return cmd
}

func graphSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph-sync",
		Short: "Project initiatives, bodies, agenda and their links into Neo4j",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStages(cmd, "graph-sync", func(*pipeline.Runner) []string { return []string{pipeline.StageGraph} })
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "api", func(ctx context.Context, a *app.App) error {
				return a.Serve(ctx)
			})
		},
	}
}

func workerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the Temporal worker for scheduled syncs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "worker", func(ctx context.Context, a *app.App) error {
				if err := a.Migrate(); err != nil {
					return err
				}
				return a.RunWorker(ctx)
			})
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
