package main

import (
	"carrier-match-service/internal/api/dto"
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/records"
	"carrier-match-service/internal/services"
	"errors"

	"github.com/spf13/cobra"
)

var errLimit = errors.New("limit must not be negative")

func rankCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "rank <modelPath> <package> <carriers>",
		Short: "Score one package against many carriers, best first",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return domain.Fail("rank", domain.KindValidation, errLimit)
			}

			pkg, err := readPackage(args[1])
			if err != nil {
				return err
			}

			carriersJSON, err := readArg(args[2])
			if err != nil {
				return domain.Fail("rank", domain.KindValidation, err)
			}
			carriers, err := records.DecodeCarriers(carriersJSON)
			if err != nil {
				return err
			}

			predictor := services.NewMatchPredictor(newModelStore(), nil)
			ranked, err := predictor.Rank(cmd.Context(), args[0], pkg, carriers, limit)
			if err != nil {
				return err
			}

			res := dto.RankResponse{Matches: make([]dto.MatchResponse, 0, len(ranked))}
			for _, m := range ranked {
				res.Matches = append(res.Matches, dto.NewMatchResponse(m))
			}
			writeOutput(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of matches to return (0 for all)")
	return cmd
}
