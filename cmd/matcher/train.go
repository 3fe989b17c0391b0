package main

import (
	"carrier-match-service/internal/adapters/model"
	"carrier-match-service/internal/adapters/repositories"
	"carrier-match-service/internal/api/dto"
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/platform/db"
	"carrier-match-service/internal/ports"
	"carrier-match-service/internal/services"
	"fmt"

	"github.com/spf13/cobra"
)

func trainCmd() *cobra.Command {
	var fromDB string

	cmd := &cobra.Command{
		Use:   "train <trainingDataPath> <modelOutputPath>",
		Short: "Fit the match classifier on historical outcomes",
		Long: `Fit the match classifier on historical outcomes and save it.

With --from-db the examples are read from a SQLite database populated by
dbtool or the server's /matches/outcomes endpoint, and the only argument is
the model output path.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if fromDB != "" {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var source ports.TrainingExampleSource
			outRef := args[len(args)-1]
			if fromDB != "" {
				conn, err := db.OpenSqlite(fromDB)
				if err != nil {
					return domain.Fail("train", domain.KindTraining, err)
				}
				defer conn.Close()
				source = repositories.NewSqliteTrainingExampleRepository(conn)
			} else {
				source = repositories.NewJSONTrainingExampleSource(args[0])
			}

			examples, err := source.ListTrainingExamples(ctx)
			if err != nil {
				return domain.Fail("train", domain.KindTraining, fmt.Errorf("load training data: %w", err))
			}

			trainer := services.NewModelTrainer(model.NewLogisticTrainer(), newModelStore())
			summary, err := trainer.Train(ctx, examples, outRef)
			if err != nil {
				return err
			}

			writeOutput(cmd.OutOrStdout(), dto.TrainResponse{Success: true, Message: summary.Message})
			return nil
		},
	}

	cmd.Flags().StringVar(&fromDB, "from-db", "", "read training examples from this SQLite database")
	return cmd
}
