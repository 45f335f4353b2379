// internal/nodeid/doc.go

/*
Package nodeid provides the identifier type for vertices of a computational
graph.

An ID is a small integer handle issued by a graph in strictly increasing order
starting at zero. It carries no ownership and is only meaningful together with
the graph that issued it. Because ids are never reused, comparing two ids also
answers "which node was created first", which is what keeps the graph acyclic.
*/
package nodeid
