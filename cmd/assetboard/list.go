package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rpggio/assetboard/internal/config"
	"github.com/rpggio/assetboard/internal/domain/board"
	"github.com/rpggio/assetboard/internal/domain/order"
	"github.com/rpggio/assetboard/internal/domain/review"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

type listOptions struct {
	project string
	sort    string
	limit   int
	format  string
}

func newListCmd(global *globalOptions) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Retrieve every asset of a project and print it sorted",
		Long: `Retrieve every page of a project's assets, join them with the imported review
info and print them in the requested order. Assets without a value for the sort
column are listed last in either direction.`,
		Example: `  assetboard list --project sunrise
  assetboard list --project sunrise --sort rig_approval_status:desc --limit 20
  assetboard list --project sunrise --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec, err := order.ParseSortExpression(opts.sort)
			if err != nil {
				return err
			}
			if spec.Column == "" {
				spec = order.DefaultSpec()
			}
			if opts.format != formatTable && opts.format != formatJSON {
				return fmt.Errorf("unknown format %q: use %s or %s", opts.format, formatTable, formatJSON)
			}
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			view, err := runList(ctx, global.cfg, global.logger, opts.project, spec)
			if err != nil {
				return err
			}
			if opts.limit > 0 && len(view.Rows) > opts.limit {
				view.Rows = view.Rows[:opts.limit]
			}
			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			return writeTable(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "project key (required)")
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", "", "sort expression column[:asc|desc] (default group_1_name:asc)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "print at most n rows (0 prints all)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "output format: table or json")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// runList retrieves the project while the review snapshot loads, then orders
// the complete result.
func runList(ctx context.Context, cfg config.Config, logger *slog.Logger, project string, spec order.SortSpec) (*board.View, error) {
	a, err := newApp(cfg, logger, activityInMemory)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("closing app", "error", err)
		}
	}()

	start := time.Now()
	handle := a.board.Select(ctx, project)

	var lookup review.Lookup
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handle.Wait(gctx)
	})
	g.Go(func() error {
		var err error
		lookup, err = a.reviews.Lookup(gctx, project)
		if err != nil {
			return fmt.Errorf("loading review info: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	st := a.collector.State()
	if st.Err != nil {
		return nil, fmt.Errorf("retrieving %s: %w", project, st.Err)
	}
	logger.Info("retrieval finished", "project", project, "assets", len(st.Assets), "duration", time.Since(start))

	ordered := order.Order(st.Assets, spec, lookup)
	return &board.View{
		Status: board.StatusOf(st),
		Sort:   spec,
		Rows:   board.BuildRows(ordered, lookup),
	}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeTable prints one line per row: name, relation, a work/approval cell per
// phase and the sort column when it is a submission time.
func writeTable(w io.Writer, view *board.View) error {
	sortCol, _ := order.LookupColumn(view.Sort.Column)
	showSubmitted := sortCol.Kind == order.KindSubmittedAt

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"NAME", "RELATION"}
	for _, phase := range review.Phases() {
		header = append(header, strings.ToUpper(string(phase)))
	}
	if showSubmitted {
		header = append(header, strings.ToUpper(sortCol.Label))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range view.Rows {
		cells := []string{row.Name, row.Relation}
		for _, phase := range review.Phases() {
			cells = append(cells, phaseCell(row.Reviews, phase))
		}
		if showSubmitted {
			cells = append(cells, submittedCell(row.Reviews, sortCol.Phase))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d assets, sorted by %s\n", view.Status.Count, view.Sort)
	return err
}

func phaseCell(reviews map[review.Phase]review.Info, phase review.Phase) string {
	info, ok := reviews[phase]
	if !ok {
		return "-"
	}
	return orDash(info.WorkStatus) + "/" + orDash(info.ApprovalStatus)
}

func submittedCell(reviews map[review.Phase]review.Info, phase review.Phase) string {
	info, ok := reviews[phase]
	if !ok || info.SubmittedAt == nil {
		return "-"
	}
	return info.SubmittedAt.UTC().Format(time.RFC3339)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
