// Package monitoring serves the state of a running network over HTTP and lets
// users pause and continue it.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/sarchlab/portnum/sim"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Monitor can turn a simulation into a server and allows external monitoring
// controlling of the simulation.
type Monitor struct {
	network    *sim.Network
	portNumber int

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterNetwork registers the network to monitor. The monitor tracks the
// progress of the network with a progress bar for the rounds and one for the
// halted processors.
func (m *Monitor) RegisterNetwork(n *sim.Network) *Monitor {
	m.network = n

	n.AcceptHook(&progressHook{
		rounds: m.CreateProgressBar("Rounds", uint64(n.RoundLimit())),
		halts: m.CreateProgressBar("Halted processors",
			uint64(n.NumProcessors())),
	})

	return m
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        sim.GetIDGenerator().Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the handler that serves the monitoring API.
func (m *Monitor) Router() http.Handler {
	if m.network == nil {
		panic("no network is registered to the monitor")
	}

	r := mux.NewRouter()

	r.HandleFunc("/api/round", m.round)
	r.HandleFunc("/api/pause", m.pauseNetwork)
	r.HandleFunc("/api/continue", m.continueNetwork)
	r.HandleFunc("/api/list_processors", m.listProcessors)
	r.HandleFunc("/api/processor/{id}", m.processorDetails)
	r.HandleFunc("/api/field/{json}", m.fieldValue)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

// StartServer starts the monitor as a web server in the background and
// returns the URL it listens on.
func (m *Monitor) StartServer() string {
	handler := m.Router()

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	go func() {
		err := http.Serve(listener, handler)
		dieOnErr(err)
	}()

	return url
}

type roundRsp struct {
	Round      int  `json:"round"`
	RoundLimit int  `json:"round_limit"`
	Halted     int  `json:"halted"`
	Total      int  `json:"total"`
	Done       bool `json:"done"`
	Paused     bool `json:"paused"`
}

func (m *Monitor) round(w http.ResponseWriter, _ *http.Request) {
	rsp := roundRsp{
		Round:      m.network.CurrentRound(),
		RoundLimit: m.network.RoundLimit(),
		Halted:     m.network.HaltedCount(),
		Total:      m.network.NumProcessors(),
		Done:       m.network.Done(),
		Paused:     m.network.IsPaused(),
	}

	writeJSON(w, rsp)
}

func (m *Monitor) pauseNetwork(w http.ResponseWriter, _ *http.Request) {
	m.network.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueNetwork(w http.ResponseWriter, _ *http.Request) {
	m.network.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

type processorRsp struct {
	Vertex      int    `json:"vertex"`
	Degree      int    `json:"degree"`
	Description string `json:"description"`
	Output      string `json:"output,omitempty"`
	Halted      bool   `json:"halted"`
}

func (m *Monitor) listProcessors(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]processorRsp, 0, m.network.NumProcessors())

	m.network.Inspect(func() {
		for i, p := range m.network.Processors() {
			output, halted := p.Output()
			rsp = append(rsp, processorRsp{
				Vertex:      i,
				Degree:      m.network.Degree(sim.Vertex(i)),
				Description: fmt.Sprint(p),
				Output:      output,
				Halted:      halted,
			})
		}
	})

	writeJSON(w, rsp)
}

func (m *Monitor) processorDetails(w http.ResponseWriter, r *http.Request) {
	p := m.findProcessorOr404(w, mux.Vars(r)["id"])
	if p == nil {
		return
	}

	buf := new(bytes.Buffer)
	var err error

	m.network.Inspect(func() {
		serializer := goseth.NewSerializer()
		serializer.SetRoot(p)
		serializer.SetMaxDepth(1)
		err = serializer.Serialize(buf)
	})
	dieOnErr(err)

	_, err = buf.WriteTo(w)
	dieOnErr(err)
}

type fieldReq struct {
	Vertex    string `json:"vertex,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) fieldValue(w http.ResponseWriter, r *http.Request) {
	req := fieldReq{}

	err := json.Unmarshal([]byte(mux.Vars(r)["json"]), &req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	p := m.findProcessorOr404(w, req.Vertex)
	if p == nil {
		return
	}

	buf := new(bytes.Buffer)
	var entryErr, serializeErr error

	m.network.Inspect(func() {
		serializer := goseth.NewSerializer()
		serializer.SetRoot(p)
		serializer.SetMaxDepth(1)

		entryErr = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
		if entryErr != nil {
			return
		}

		serializeErr = serializer.Serialize(buf)
	})

	if entryErr != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", entryErr)
		return
	}
	dieOnErr(serializeErr)

	_, err = buf.WriteTo(w)
	dieOnErr(err)
}

func (m *Monitor) findProcessorOr404(
	w http.ResponseWriter,
	id string,
) sim.Processor {
	v, err := strconv.Atoi(id)
	if err != nil || v < 0 || v >= m.network.NumProcessors() {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Processor not found"))
		dieOnErr(err)

		return nil
	}

	return m.network.Processor(sim.Vertex(v))
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	writeJSON(w, m.progressBars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
