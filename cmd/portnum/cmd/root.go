// Package cmd provides the command-line interface of portnum.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Environment variables that provide flag defaults. They can also be set in a
// .env file in the working directory.
const (
	envSeed       = "PORTNUM_SEED"
	envRoundLimit = "PORTNUM_ROUND_LIMIT"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "portnum",
	Short: "Portnum simulates distributed algorithms in the port-numbering model.",
	Long: `Portnum simulates synchronous networks of anonymous processors ` +
		`that only know their own degree and the numbers of their ports. ` +
		`It ships a bipartite maximal matching algorithm and a vertex cover ` +
		`approximation built on top of it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadEnv(cmd)
	},
}

var opts = runOptions{}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.Int64Var(&opts.seed, "seed", 0,
		"Seed of the random graph generator. 0 picks a seed from the clock. "+
			"Defaults to $"+envSeed+".")
	flags.IntVar(&opts.roundLimit, "round-limit", 0,
		"Maximum number of rounds to run. "+
			"Defaults to $"+envRoundLimit+" or the default of the algorithm.")
	flags.StringVar(&opts.graphFile, "graph", "",
		"Read the graph from a YAML file instead of generating it.")
	flags.StringVar(&opts.saveGraph, "save-graph", "",
		"Write the graph into a YAML file.")
	flags.StringVar(&opts.record, "record", "",
		"Record messages, halts, and rounds into the SQLite file "+
			"<record>.sqlite3.")
	flags.BoolVar(&opts.monitor, "monitor", false,
		"Serve the state of the network over HTTP while running.")
	flags.IntVar(&opts.monitorPort, "monitor-port", 0,
		"Port of the monitoring server. 0 picks a free port.")
	flags.BoolVar(&opts.openBrowser, "open-browser", false,
		"Open the monitoring server in a browser.")
	flags.BoolVar(&opts.quiet, "quiet", false,
		"Only print the final outputs.")
	flags.BoolVar(&opts.logMessages, "log-messages", false,
		"Print every non-empty message.")
}

// loadEnv reads the .env file, if any, and fills the flags that are not set
// on the command line from the environment.
func loadEnv(cmd *cobra.Command) error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	flags := cmd.Flags()

	if !flags.Changed("seed") {
		seed, err := envInt(envSeed)
		if err != nil {
			return err
		}

		opts.seed = int64(seed)
	}

	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}

	if !flags.Changed("round-limit") {
		limit, err := envInt(envRoundLimit)
		if err != nil {
			return err
		}

		opts.roundLimit = limit
	}

	return nil
}

func envInt(name string) (int, error) {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("$%s: %w", name, err)
	}

	return n, nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
