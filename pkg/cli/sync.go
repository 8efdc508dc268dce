package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/types"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/usecase"
)

// ErrSyncFailed is returned by the sync commands when a run did not succeed
var ErrSyncFailed = goerr.New("sync run failed")

var syncOutput io.Writer = os.Stdout

func cmdSync() *cli.Command {
	var engine engineConfig
	var limit int

	run := func(name, usage string, fn func(ctx context.Context, uc *usecase.UseCases) error) *cli.Command {
		return &cli.Command{
			Name:  name,
			Usage: usage,
			Flags: engine.Flags(),
			Action: func(ctx context.Context, c *cli.Command) error {
				uc, closer, err := engine.build(ctx)
				if err != nil {
					return err
				}
				defer closer()
				return fn(ctx, uc)
			},
		}
	}

	runs := run("runs", "List the latest reconciliation runs", func(ctx context.Context, uc *usecase.UseCases) error {
		list, err := uc.Sync.ListRuns(ctx, limit)
		if err != nil {
			return goerr.Wrap(err, "failed to list sync runs")
		}
		printRuns(syncOutput, list)
		return nil
	})
	runs.Flags = append(runs.Flags, &cli.IntFlag{
		Name:        "limit",
		Usage:       "Number of runs to list",
		Value:       usecase.DefaultRunListLimit,
		Destination: &limit,
	})

	return &cli.Command{
		Name:  "sync",
		Usage: "Reconcile the primary store and the document store",
		Commands: []*cli.Command{
			run("pull", "Copy document store changes into the primary store", func(ctx context.Context, uc *usecase.UseCases) error {
				return reportResult(syncOutput, uc.Sync.PullAll(ctx))
			}),
			run("push", "Copy the primary store into the document store", func(ctx context.Context, uc *usecase.UseCases) error {
				return reportResult(syncOutput, uc.Sync.PushAll(ctx))
			}),
			run("full", "Pull then push", func(ctx context.Context, uc *usecase.UseCases) error {
				result := uc.Sync.FullBidirectional(ctx)
				if result.Pull != nil {
					printResult(syncOutput, result.Pull)
				}
				if result.Push != nil {
					printResult(syncOutput, result.Push)
				}
				if !result.Success {
					return goerr.Wrap(ErrSyncFailed, "full reconciliation failed")
				}
				return nil
			}),
			runs,
		},
	}
}

func reportResult(w io.Writer, result *model.SyncResult) error {
	printResult(w, result)
	if !result.Success {
		return goerr.Wrap(ErrSyncFailed, result.Message,
			goerr.V("run_id", result.RunID),
			goerr.V("direction", result.Direction))
	}
	return nil
}

func printResult(w io.Writer, result *model.SyncResult) {
	status := color.GreenString("OK")
	if !result.Success {
		status = color.RedString("FAILED")
	}

	fmt.Fprintf(w, "%s %s run %s at %s\n", status, result.Direction, result.RunID, result.RunAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  %s\n", result.Message)
	if result.Error != "" {
		fmt.Fprintf(w, "  %s %s\n", color.RedString("error:"), result.Error)
	}
	printCounts(w, result.Counts)
}

func printCounts(w io.Writer, counts map[string]int) {
	for _, kind := range types.AllEntityKinds() {
		n, ok := counts[kind.Collection()]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-28s %d\n", kind.Collection(), n)
	}
}

func printRuns(w io.Writer, runs []*model.SyncRun) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "no sync runs recorded")
		return
	}
	for _, r := range runs {
		status := color.GreenString("OK    ")
		if !r.Success {
			status = color.RedString("FAILED")
		}
		fmt.Fprintf(w, "%s %s %-5s %s %s\n", status, r.RunAt.Format("2006-01-02 15:04:05"), r.Direction, r.RunID, r.Remark)
	}
}
