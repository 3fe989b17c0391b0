package main

import (
	"carrier-match-service/internal/api/dto"
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/records"
	"carrier-match-service/internal/services"

	"github.com/spf13/cobra"
)

func quoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "quote <package> <carrier>",
		Short:   "Price one package/carrier pair without scoring it",
		Example: `  matcher quote @package.json @carrier.json`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := readPackage(args[0])
			if err != nil {
				return err
			}

			carrierJSON, err := readArg(args[1])
			if err != nil {
				return domain.Fail("quote", domain.KindValidation, err)
			}
			carrier, err := records.DecodeCarrier(carrierJSON)
			if err != nil {
				return err
			}

			amount, err := services.QuoteCompensation(pkg, carrier)
			if err != nil {
				return err
			}

			writeOutput(cmd.OutOrStdout(), dto.QuoteResponse{
				CarrierID:    carrier.ID,
				PackageID:    pkg.ID,
				Compensation: amount,
			})
			return nil
		},
	}
}
