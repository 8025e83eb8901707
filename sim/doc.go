// Package sim provides the engine that simulates the port-numbering model of
// distributed computing.
//
// A network is a set of anonymous processors joined by links. Each processor
// only knows its degree and numbers its links 1..degree. The engine runs the
// network in synchronous rounds. In every round, all the processors first
// send one message on each port, then all the messages are received, and
// finally every processor computes once. The simulation stops when all the
// processors have produced an output, or when the round limit is reached.
package sim
