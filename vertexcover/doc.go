// Package vertexcover approximates a minimum vertex cover in the
// port-numbering model.
//
// Every physical processor runs two matching processors, a white copy and a
// black copy. Together the copies simulate the bipartite double cover of the
// network, where the maximal matching algorithm applies. A vertex joins the
// cover if either of its copies gets matched. The resulting cover is at most
// three times as large as a minimum one.
package vertexcover
