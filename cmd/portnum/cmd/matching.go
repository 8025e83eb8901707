package cmd

import (
	"fmt"

	"github.com/sarchlab/portnum/graphgen"
	"github.com/sarchlab/portnum/matching"
	"github.com/sarchlab/portnum/sim"
	"github.com/spf13/cobra"
)

var matchingCmd = &cobra.Command{
	Use:   "matching",
	Short: "Find a maximal matching in a bipartite graph.",
	Long: "`matching` finds a maximal matching in a random bipartite graph, " +
		"or in the graph given with --graph. A graph file must list its " +
		"white vertices.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		whites, _ := cmd.Flags().GetInt("white")
		blacks, _ := cmd.Flags().GetInt("black")
		p, _ := cmd.Flags().GetFloat64("probability")

		d, err := bipartiteGraph(whites, blacks, p)
		if err != nil {
			return err
		}

		err = opts.maybeSaveGraph(d)
		if err != nil {
			return err
		}

		_, edges := d.Graph()
		colors := matching.ColorsFor(d.Vertices, d.WhiteVertices())

		err = matching.CheckBipartite(colors, edges)
		if err != nil {
			return err
		}

		builder := sim.MakeBuilder().
			WithProcessorFactory(matching.Factory).
			WithRoundLimit(opts.roundLimitOr(sim.DefaultRoundLimit))

		_, err = opts.runNetwork(cmd.OutOrStdout(), builder,
			sim.Inputs(colors), edges)

		return err
	},
}

func bipartiteGraph(whites, blacks int, p float64) (graphgen.Description, error) {
	if opts.graphFile != "" {
		d, err := opts.loadGraph()
		if err != nil {
			return d, err
		}

		if len(d.White) == 0 {
			return d, fmt.Errorf("graph %s lists no white vertices",
				opts.graphFile)
		}

		return d, nil
	}

	sides, edges, err := graphgen.ERBipartite(whites, blacks, p, opts.rng())
	if err != nil {
		return graphgen.Description{}, err
	}

	return graphgen.Describe(sides.NumVertices(), edges, sides.A), nil
}

func init() {
	rootCmd.AddCommand(matchingCmd)
	matchingCmd.Flags().Int("white", 7, "Number of white vertices")
	matchingCmd.Flags().Int("black", 11, "Number of black vertices")
	matchingCmd.Flags().Float64P("probability", "p", 0.9,
		"Probability that a white and a black vertex are connected")
}
