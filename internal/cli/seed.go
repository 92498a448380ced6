package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sipcrew/partyround/internal/config"
	"github.com/sipcrew/partyround/internal/repositories/questionbank"
)

// NewSeedCmd loads the starter question pack into the bank.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the question bank with the starter pack",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			db, err := openBun(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			questions := starterQuestions()
			if err := questionbank.Seed(cmd.Context(), db, questions); err != nil {
				return err
			}
			logrus.WithField("count", len(questions)).Info("question bank seeded")
			return nil
		},
	}
}
