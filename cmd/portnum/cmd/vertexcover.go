package cmd

import (
	"github.com/sarchlab/portnum/graphgen"
	"github.com/sarchlab/portnum/sim"
	"github.com/sarchlab/portnum/vertexcover"
	"github.com/spf13/cobra"
)

// defaultCoverRoundLimit is the round limit of the vertex cover command when
// none is given.
const defaultCoverRoundLimit = 10

var vertexCoverCmd = &cobra.Command{
	Use:   "vertexcover",
	Short: "Approximate a minimum vertex cover.",
	Long: "`vertexcover` finds a vertex cover at most three times as large " +
		"as a minimum one, in a random graph or in the graph given with " +
		"--graph.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		size, _ := cmd.Flags().GetInt("size")
		p, _ := cmd.Flags().GetFloat64("probability")

		d, err := generalGraph(size, p)
		if err != nil {
			return err
		}

		err = opts.maybeSaveGraph(d)
		if err != nil {
			return err
		}

		vertices, edges := d.Graph()

		builder := sim.MakeBuilder().
			WithProcessorFactory(vertexcover.Factory).
			WithRoundLimit(opts.roundLimitOr(defaultCoverRoundLimit))

		_, err = opts.runNetwork(cmd.OutOrStdout(), builder,
			sim.Inputs(vertices), edges)

		return err
	},
}

func generalGraph(size int, p float64) (graphgen.Description, error) {
	if opts.graphFile != "" {
		return opts.loadGraph()
	}

	vertices, edges, err := graphgen.ER(size, p, opts.rng())
	if err != nil {
		return graphgen.Description{}, err
	}

	return graphgen.Describe(len(vertices), edges, nil), nil
}

func init() {
	rootCmd.AddCommand(vertexCoverCmd)
	vertexCoverCmd.Flags().Int("size", 10, "Number of vertices")
	vertexCoverCmd.Flags().Float64P("probability", "p", 0.2,
		"Probability that two vertices are connected")
}
