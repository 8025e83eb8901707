// Package matching implements the bipartite maximal matching algorithm of the
// port-numbering model.
//
// Every processor is either white or black, and every edge joins a white
// processor to a black one. In round 2k-1, each white processor that is still
// unmatched proposes to its k-th port. In round 2k, each unmatched black
// processor that got proposals accepts the one from its lowest port. A white
// processor that gets accepted tells all its neighbors that it is matched in
// the next odd round, so that black processors can give up waiting for it.
package matching
