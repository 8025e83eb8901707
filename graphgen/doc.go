// Package graphgen generates the input graphs of simulations.
//
// ER and ERBipartite sample Erdos-Renyi random graphs from a caller-provided
// random source, trying the vertex pairs in a fixed order so that a seed
// always produces the same graph. Graph descriptions can also be read from
// and written to YAML files.
package graphgen
