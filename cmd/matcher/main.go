package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// errorOutput is the single object printed when a command fails.
type errorOutput struct {
	Error string `json:"error"`
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "matcher",
		Short: "Score package/carrier matches and train the match model",
		Long: `matcher scores how well a carrier fits a delivery package, quotes the
carrier's compensation and trains the classifier behind the score.

JSON arguments may be passed inline or as @path to read them from a file.
Every command prints exactly one JSON object on stdout.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(predictCmd())
	root.AddCommand(quoteCmd())
	root.AddCommand(rankCmd())
	root.AddCommand(trainCmd())

	return root
}

// run executes the CLI and returns the process exit code. Logs go to stderr
// so stdout carries only the JSON result.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		writeOutput(stdout, errorOutput{Error: err.Error()})
		return 1
	}
	return 0
}

func writeOutput(w io.Writer, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode output failed: %v", err)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
