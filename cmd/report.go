package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yashir5686/disha-portal/internal/recommend"
	"github.com/yashir5686/disha-portal/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show your saved career recommendation",
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

		ctx := context.Background()
		profile, err := s.ProfileRepo().Get(ctx, userID)
		if errors.Is(err, store.ErrNotFound) || (err == nil && profile.Recommendation == nil) {
			fmt.Println("No saved recommendation. Run 'disha quiz' first.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}

		var rec recommend.Recommendation
		if err := json.Unmarshal(profile.Recommendation, &rec); err != nil {
			return fmt.Errorf("decode stored recommendation: %w", err)
		}

		if profile.Grade != "" {
			line := fmt.Sprintf("Class %s", profile.Grade)
			if profile.Stream != "" {
				line += fmt.Sprintf(", %s", profile.Stream)
			}
			fmt.Println(line)
		}
		printRecommendation(&rec)
		return nil
	},
}
