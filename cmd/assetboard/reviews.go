package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rpggio/assetboard/internal/domain/activity"
	"github.com/spf13/cobra"
)

func newReviewsCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Manage the review info snapshot",
	}
	cmd.AddCommand(newReviewsImportCmd(global))
	return cmd
}

func newReviewsImportCmd(global *globalOptions) *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace a project's review info with a JSON snapshot",
		Long: `Replace a project's review info with a JSON snapshot. The snapshot is an object
keyed by "name-relation-phase" whose values carry work_status, approval_status,
submitted_at_utc and review_comments. Use - to read from stdin.`,
		Example: `  assetboard reviews import --project sunrise reviews.json
  curl -s $EXPORT_URL | assetboard reviews import --project sunrise -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening snapshot: %w", err)
				}
				defer f.Close()
				r = f
			}

			a, err := newApp(global.cfg, global.logger, activityPersistent)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					global.logger.Error("closing app", "error", err)
				}
			}()

			n, err := a.reviews.Import(ctx, project, r)
			if err != nil {
				return err
			}
			entry := &activity.ActivityEntry{
				ProjectKey:   project,
				ActivityType: activity.TypeReviewsImported,
				Summary:      fmt.Sprintf("Imported %d review entries for %s", n, project),
			}
			if err := a.activity.LogActivity(ctx, entry); err != nil {
				global.logger.Warn("failed to log import", "error", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d review entries for %s\n", n, project)
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "project key (required)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
