package main

import (
	"carrier-match-service/internal/api/dto"
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/records"
	"carrier-match-service/internal/services"

	"github.com/spf13/cobra"
)

func predictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "predict <modelPath> <package> <carrier>",
		Short: "Score one package against one carrier",
		Example: `  matcher predict data/models/match_model.json @package.json @carrier.json
  matcher predict http://scorer:9000/score '{"id":"p1",...}' '{"id":"c1",...}'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := readPackage(args[1])
			if err != nil {
				return err
			}

			carrierJSON, err := readArg(args[2])
			if err != nil {
				return domain.Fail("predict", domain.KindValidation, err)
			}
			carrier, err := records.DecodeCarrier(carrierJSON)
			if err != nil {
				return err
			}

			predictor := services.NewMatchPredictor(newModelStore(), nil)
			res, err := predictor.Predict(cmd.Context(), args[0], pkg, carrier)
			if err != nil {
				return err
			}

			writeOutput(cmd.OutOrStdout(), dto.NewMatchResponse(res))
			return nil
		},
	}
}

func readPackage(arg string) (domain.Package, error) {
	b, err := readArg(arg)
	if err != nil {
		return domain.Package{}, domain.Fail("read package", domain.KindValidation, err)
	}
	return records.DecodePackage(b)
}
