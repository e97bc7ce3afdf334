package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yashir5686/disha-portal/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "disha",
	Short: "AI career guidance for Indian students",
	Long:  "Disha — adaptive career-guidance quiz for Indian students (grades 10/12) with a personalized stream and degree recommendation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DISHA_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "User identity key (overrides DISHA_USER env var)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then DISHA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveUserID returns the user identity from --user, DISHA_USER, or the
// "local" default for single-user installs.
func resolveUserID(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	if u := os.Getenv("DISHA_USER"); u != "" {
		return u
	}
	return "local"
}
