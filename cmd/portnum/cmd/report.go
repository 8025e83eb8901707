package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/portnum/datarecording"
	"github.com/sarchlab/portnum/tracing"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Print the rounds and the halts of a recorded run.",
	Long: "`report` reads a database written with --record and prints, for " +
		"every round, how many processors had halted and how many messages " +
		"were sent, followed by the halts in the order they happened.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := os.Stat(args[0])
		if err != nil {
			return err
		}

		reader, err := datarecording.NewReader(args[0])
		if err != nil {
			return err
		}
		defer closeDatabase(cmd.ErrOrStderr(), reader)

		return report(cmd.Context(), cmd.OutOrStdout(), reader)
	},
}

func report(
	ctx context.Context,
	out io.Writer,
	reader datarecording.DataReader,
) error {
	reader.MapTable(tracing.RoundTable, tracing.RoundEntry{})
	reader.MapTable(tracing.HaltTable, tracing.HaltEntry{})
	reader.MapTable(tracing.MessageTable, tracing.MessageEntry{})

	rounds, _, err := reader.Query(ctx, tracing.RoundTable,
		datarecording.QueryParams{OrderBy: "Round"})
	if err != nil {
		return fmt.Errorf("reading rounds: %w", err)
	}

	fmt.Fprintf(out, "Rounds: %d\n", len(rounds))
	for _, r := range rounds {
		entry := r.(*tracing.RoundEntry)

		_, messages, err := reader.Query(ctx, tracing.MessageTable,
			datarecording.QueryParams{
				Where: "Round = ?",
				Args:  []any{entry.Round},
				Limit: 1,
			})
		if err != nil {
			return fmt.Errorf("reading messages: %w", err)
		}

		fmt.Fprintf(out, "\tRound %d: %d/%d halted, %d messages\n",
			entry.Round, entry.Halted, entry.Total, messages)
	}

	halts, _, err := reader.Query(ctx, tracing.HaltTable,
		datarecording.QueryParams{OrderBy: "Round, Vertex"})
	if err != nil {
		return fmt.Errorf("reading halts: %w", err)
	}

	fmt.Fprintf(out, "Halts: %d\n", len(halts))
	for _, h := range halts {
		entry := h.(*tracing.HaltEntry)
		fmt.Fprintf(out, "\tRound %d: Processor%d %s\n",
			entry.Round, entry.Vertex, entry.Output)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
