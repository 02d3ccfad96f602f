package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/spf13/cobra"
)

var rlsUser string

var rlsCheckCmd = &cobra.Command{
	Use:   "rls-check <table>",
	Short: "Count the rows of a table visible to a user under row level security",
	Args:  cobra.ExactArgs(1),
	RunE:  runRLSCheck,
}

func init() {
	rlsCheckCmd.Flags().StringVar(&rlsUser, "user", "", "User id to impersonate")
	_ = rlsCheckCmd.MarkFlagRequired("user")
}

func runRLSCheck(cmd *cobra.Command, args []string) error {
	userID, err := uuid.Parse(rlsUser)
	if err != nil {
		return fmt.Errorf("invalid --user: %w", err)
	}
	claims, err := json.Marshal(map[string]string{"user_id": userID.String()})
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	db, err := sql.Open("postgres", cfg.Database.URL())
	if err != nil {
		return err
	}
	defer db.Close()

	total, visible, err := countVisible(ctx, db, args[0], string(claims))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d rows visible to %s\n", args[0], visible, total, userID)
	return nil
}

// countVisible counts the table as the connecting role and again as the
// authenticated role with the given JWT claims. The impersonation is rolled
// back.
func countVisible(ctx context.Context, db *sql.DB, table, claims string) (total, visible int64, err error) {
	count := "SELECT count(*) FROM " + pq.QuoteIdentifier(table)
	if err := db.QueryRowContext(ctx, count).Scan(&total); err != nil {
		return 0, 0, fmt.Errorf("count %s: %w", table, err)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SET LOCAL ROLE authenticated"); err != nil {
		return 0, 0, fmt.Errorf("switch role: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "SELECT set_config('request.jwt.claims', $1, true)", claims); err != nil {
		return 0, 0, fmt.Errorf("set claims: %w", err)
	}
	if err := tx.QueryRowContext(ctx, count).Scan(&visible); err != nil {
		return 0, 0, fmt.Errorf("count %s as user: %w", table, err)
	}
	return total, visible, nil
}
