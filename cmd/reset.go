package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yashir5686/disha-portal/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard your saved recommendation",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := resolveUserID(cmd)

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.ProfileRepo().ClearRecommendation(context.Background(), userID); err != nil {
			return fmt.Errorf("clear recommendation: %w", err)
		}
		fmt.Println("Saved recommendation discarded. Run 'disha quiz' to take the quiz again.")
		return nil
	},
}
