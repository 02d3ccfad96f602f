package main

import (
	"fmt"
	"time"

	"campus-hub/internal/repository"
	"campus-hub/internal/service"

	"github.com/spf13/cobra"
)

var pruneDryRun bool

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete pre-student accounts past the retention window",
	Long: `Delete accounts that registered without a university email and did not
verify within PRE_STUDENT_RETENTION_DAYS. Profiles, listings and messages of
those accounts are removed with them.`,
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "List expired accounts without deleting them")
}

func runPrune(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := service.NewPruneService(repository.NewUserRepository(db, logger), cfg.Onboarding.PreStudentRetention, logger)
	res, err := svc.Prune(ctx, time.Now(), pruneDryRun)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "cutoff: %s\n", res.Cutoff.Format(time.RFC3339))
	for _, id := range res.Expired {
		fmt.Fprintln(out, id)
	}
	if pruneDryRun {
		fmt.Fprintf(out, "%d expired (dry run)\n", len(res.Expired))
		return nil
	}
	fmt.Fprintf(out, "%d deleted\n", res.Deleted)
	return nil
}
