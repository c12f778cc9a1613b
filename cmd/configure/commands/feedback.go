package commands

import (
	"context"
	"fmt"

	"github.com/campaignkit/marketing-api/internal/config"
	"github.com/campaignkit/marketing-api/internal/database"
	"github.com/spf13/cobra"
)

// NewFeedbackCmd creates the feedback command with list and ratings subcommands.
func NewFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Inspect stored campaign feedback",
	}
	cmd.AddCommand(newFeedbackListCmd())
	cmd.AddCommand(newFeedbackRatingsCmd())
	return cmd
}

func newFeedbackListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored feedback records",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openFeedbackRepo()
			if err != nil {
				return err
			}
			defer closeDB()

			records, err := repo.All(context.Background())
			if err != nil {
				return fmt.Errorf("list feedback: %w", err)
			}
			if len(records) == 0 {
				fmt.Println("No feedback records stored.")
				return nil
			}
			for _, rec := range records {
				fmt.Printf("  #%d  user=%s  campaign=%s  product=%s  offer=%s  at=%s\n",
					rec.ID, rec.User, rec.CampaignType, rec.Product, rec.Offer,
					rec.Timestamp.Format("2006-01-02 15:04:05"))
				fmt.Printf("      %s\n", string(rec.Feedback))
			}
			return nil
		},
	}
}

func newFeedbackRatingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ratings",
		Short: "Show feedback counts grouped by rating",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openFeedbackRepo()
			if err != nil {
				return err
			}
			defer closeDB()

			counts, err := repo.RatingCounts(context.Background())
			if err != nil {
				return fmt.Errorf("count ratings: %w", err)
			}
			if len(counts) == 0 {
				fmt.Println("No rated feedback stored.")
				return nil
			}
			for rating, count := range counts {
				fmt.Printf("  %s: %d\n", rating, count)
			}
			return nil
		},
	}
}

func openFeedbackRepo() (*database.FeedbackRepository, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return database.NewFeedbackRepository(db), func() { _ = db.Close() }, nil
}
