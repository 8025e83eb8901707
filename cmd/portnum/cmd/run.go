package cmd

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/pkg/browser"
	"github.com/sarchlab/portnum/datarecording"
	"github.com/sarchlab/portnum/graphgen"
	"github.com/sarchlab/portnum/monitoring"
	"github.com/sarchlab/portnum/sim"
	"github.com/sarchlab/portnum/tracing"
)

type runOptions struct {
	seed        int64
	roundLimit  int
	graphFile   string
	saveGraph   string
	record      string
	monitor     bool
	monitorPort int
	openBrowser bool
	quiet       bool
	logMessages bool
}

func (o runOptions) rng() *rand.Rand {
	fmt.Fprintf(os.Stderr, "Random seed: %d\n", o.seed)
	return rand.New(rand.NewSource(o.seed))
}

func (o runOptions) roundLimitOr(defaultLimit int) int {
	if o.roundLimit > 0 {
		return o.roundLimit
	}

	return defaultLimit
}

func (o runOptions) loadGraph() (graphgen.Description, error) {
	d, err := graphgen.LoadFile(o.graphFile)
	if err != nil {
		return graphgen.Description{}, fmt.Errorf("loading graph: %w", err)
	}

	return d, nil
}

func (o runOptions) maybeSaveGraph(d graphgen.Description) error {
	if o.saveGraph == "" {
		return nil
	}

	err := d.SaveFile(o.saveGraph)
	if err != nil {
		return fmt.Errorf("saving graph: %w", err)
	}

	return nil
}

// runNetwork builds a network, attaches the requested observers, and runs it
// to the end. The outputs go to out.
func (o runOptions) runNetwork(
	out io.Writer,
	builder sim.Builder,
	inputs []any,
	edges []sim.Edge,
) (sim.Result, error) {
	network, err := builder.Build(inputs, edges)
	if err != nil {
		return sim.Result{}, err
	}

	fmt.Fprintln(out, network)
	if !o.quiet {
		for i, p := range network.Processors() {
			fmt.Fprintf(out, "\tProcessor%d: %v\n", i, p)
		}
	}

	logger := sim.NewRoundLogger(log.New(out, "", 0))
	logger.LogMessages = o.logMessages
	if !o.quiet {
		network.AcceptHook(logger)
	}

	counter := tracing.NewMessageCounter()
	tracing.CollectTrace(network, counter)

	if o.record != "" {
		recorder := datarecording.NewDataRecorder(o.record)
		defer closeDatabase(os.Stderr, recorder)

		tracing.CollectTrace(network, tracing.NewRecorderTracer(recorder))
	}

	if o.monitor {
		o.startMonitor(network)
	}

	res, err := network.Run()
	if err != nil {
		return res, err
	}

	if o.quiet {
		logger.Func(sim.HookCtx{
			Domain: network,
			Pos:    sim.HookPosRunEnd,
			Item:   res,
		})
	}

	fmt.Fprintf(out, "%s after %d rounds, %d messages sent\n",
		res.Status(), res.Rounds, counter.Total())

	return res, nil
}

func (o runOptions) startMonitor(network *sim.Network) {
	// Several monitored runs may be open in the same browser.
	sim.UseUniqueIDGenerator()

	url := monitoring.NewMonitor().
		WithPortNumber(o.monitorPort).
		RegisterNetwork(network).
		StartServer()

	if !o.openBrowser {
		return
	}

	err := browser.OpenURL(url + "/api/round")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open browser: %v\n", err)
	}
}

func closeDatabase(errOut io.Writer, db io.Closer) {
	err := db.Close()
	if err != nil {
		fmt.Fprintf(errOut, "Failed to close database: %v\n", err)
	}
}
