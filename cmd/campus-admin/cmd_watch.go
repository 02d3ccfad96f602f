package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"campus-hub/internal/messaging"

	"github.com/spf13/cobra"
)

var watchSubject string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print realtime events published on NATS",
	Long: `Subscribe to campus-hub events and print one JSON line per event until
interrupted. Use --subject "messages.>" for chat traffic or
"listings.created" for new listings.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchSubject, "subject", messaging.SubjectAll, "NATS subject to follow")
}

func runWatch(cmd *cobra.Command, args []string) error {
	natsCfg := messaging.DefaultNATSConfig()
	natsCfg.URL = cfg.NATS.URL
	natsCfg.Name = "campus-admin"
	nc, err := messaging.NewNATSClient(natsCfg, logger)
	if err != nil {
		return err
	}
	defer nc.Close()

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	err = nc.Subscribe(watchSubject, func(ev messaging.Event) {
		_ = enc.Encode(struct {
			At time.Time `json:"at"`
			messaging.Event
		}{time.UnixMilli(ev.Timestamp), ev})
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "watching %s, Ctrl+C to stop\n", watchSubject)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}
