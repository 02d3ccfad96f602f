package main

import (
	"fmt"
	"text/tabwriter"

	"campus-hub/internal/repository"
	"campus-hub/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var peersLimit int

var peersCmd = &cobra.Command{
	Use:   "peers <profile-id>",
	Short: "Print scored peer recommendations for a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runPeers,
}

func init() {
	peersCmd.Flags().IntVar(&peersLimit, "limit", 20, "Maximum number of peers")
}

func runPeers(cmd *cobra.Command, args []string) error {
	profileID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid profile id %q: %w", args[0], err)
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := service.NewRecommendationService(
		repository.NewProfileRepository(db, logger),
		repository.NewRecommendationRepository(db, logger),
		repository.NewDirectoryRepository(db, logger),
		logger,
	)
	peers, err := svc.PeersForProfile(ctx, profileID, peersLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tPROFILE\tNAME\tVERIFIED\tFOLLOWERS")
	for _, p := range peers {
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%d\n",
			p.Score, p.Profile.ID, p.Profile.FullName, p.Profile.IsVerifiedStudent, p.Profile.FollowersCount)
	}
	return w.Flush()
}
