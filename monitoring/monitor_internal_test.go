package monitoring

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/portnum/matching"
	"github.com/sarchlab/portnum/sim"
)

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

var _ = Describe("Monitor", func() {
	var (
		network *sim.Network
		m       *Monitor
		handler http.Handler
	)

	BeforeEach(func() {
		colors := []matching.Color{
			matching.White, matching.White, matching.Black,
		}

		var err error
		network, err = sim.MakeBuilder().
			WithProcessorFactory(matching.Factory).
			WithRoundLimit(10).
			Build(sim.Inputs(colors),
				[]sim.Edge{{U: 0, V: 2}, {U: 1, V: 2}})
		Expect(err).NotTo(HaveOccurred())

		m = NewMonitor().RegisterNetwork(network)
		handler = m.Router()
	})

	It("should panic without a network", func() {
		Expect(func() { NewMonitor().Router() }).To(Panic())
	})

	It("should ignore reserved port numbers", func() {
		Expect(NewMonitor().WithPortNumber(80).portNumber).To(Equal(0))
		Expect(NewMonitor().WithPortNumber(32776).portNumber).To(Equal(32776))
	})

	It("should report the round", func() {
		Expect(network.Step()).To(Succeed())

		rec := get(handler, "/api/round")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`{
			"round": 1,
			"round_limit": 10,
			"halted": 0,
			"total": 3,
			"done": false,
			"paused": false
		}`))
	})

	It("should pause and continue the network", func() {
		get(handler, "/api/pause")
		Expect(network.IsPaused()).To(BeTrue())

		get(handler, "/api/continue")
		Expect(network.IsPaused()).To(BeFalse())
	})

	It("should list processors", func() {
		_, err := network.Run()
		Expect(err).NotTo(HaveOccurred())

		rec := get(handler, "/api/list_processors")

		var rsp []processorRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(Equal([]processorRsp{
			{
				Vertex:      0,
				Degree:      1,
				Description: "MaxMatcher[White](d=1,state=MS)",
				Output:      "matched to port 1",
				Halted:      true,
			},
			{
				Vertex:      1,
				Degree:      1,
				Description: "MaxMatcher[White](d=1,state=US)",
				Output:      matching.OutputUnmatched,
				Halted:      true,
			},
			{
				Vertex:      2,
				Degree:      2,
				Description: "MaxMatcher[Black](d=2,state=MR)",
				Output:      "matched to port 1",
				Halted:      true,
			},
		}))
	})

	It("should serialize a processor", func() {
		rec := get(handler, "/api/processor/2")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should reply 404 for unknown processors", func() {
		Expect(get(handler, "/api/processor/3").Code).
			To(Equal(http.StatusNotFound))
		Expect(get(handler, "/api/processor/abc").Code).
			To(Equal(http.StatusNotFound))
	})

	It("should reject malformed field requests", func() {
		rec := get(handler, "/api/field/notjson")

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should serve processors while the network runs", func() {
		const side = 10

		colors := make([]matching.Color, 0, 2*side)
		edges := make([]sim.Edge, 0, side*side)
		for i := 0; i < side; i++ {
			colors = append(colors, matching.White)
			for j := side; j < 2*side; j++ {
				edges = append(edges, sim.Edge{U: sim.Vertex(i), V: sim.Vertex(j)})
			}
		}
		for i := 0; i < side; i++ {
			colors = append(colors, matching.Black)
		}

		running, err := sim.MakeBuilder().
			WithProcessorFactory(matching.Factory).
			WithRoundLimit(200).
			Build(sim.Inputs(colors), edges)
		Expect(err).NotTo(HaveOccurred())
		handler := NewMonitor().RegisterNetwork(running).Router()

		done := make(chan struct{})
		go func() {
			defer GinkgoRecover()
			defer close(done)

			_, err := running.Run()
			Expect(err).NotTo(HaveOccurred())
		}()

		for serving := true; serving; {
			select {
			case <-done:
				serving = false
			default:
			}

			Expect(get(handler, "/api/list_processors").Code).
				To(Equal(http.StatusOK))
			Expect(get(handler, "/api/processor/2").Code).
				To(Equal(http.StatusOK))
		}

		Expect(running.Done()).To(BeTrue())
	})

	It("should track progress", func() {
		_, err := network.Run()
		Expect(err).NotTo(HaveOccurred())

		rec := get(handler, "/api/progress")

		var bars []struct {
			Name     string `json:"name"`
			Total    uint64 `json:"total"`
			Finished uint64 `json:"finished"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(2))
		Expect(bars[0].Name).To(Equal("Rounds"))
		Expect(bars[0].Total).To(Equal(uint64(10)))
		Expect(bars[0].Finished).To(Equal(uint64(3)))
		Expect(bars[1].Name).To(Equal("Halted processors"))
		Expect(bars[1].Finished).To(Equal(uint64(3)))
	})

	It("should remove completed progress bars", func() {
		bar := m.CreateProgressBar("extra", 5)
		Expect(m.progressBars).To(HaveLen(3))

		m.CompleteProgressBar(bar)

		Expect(m.progressBars).To(HaveLen(2))
	})

	It("should report resources", func() {
		rec := get(handler, "/api/resource")

		var rsp resourceRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should serve over HTTP", func() {
		url := m.StartServer()

		rsp, err := http.Get(url + "/api/round")
		Expect(err).NotTo(HaveOccurred())
		defer rsp.Body.Close()

		body, err := io.ReadAll(rsp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`"total":3`))
	})
})
