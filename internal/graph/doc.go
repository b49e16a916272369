// Package graph assembles connector lines and rectangles into a navigable
// node graph.
//
// Travel nodes are placed where a vertical line crosses a horizontal one.
// Nodes on the same line are linked to their neighbours along it, weighted
// by Euclidean distance. Line endpoints resting on a rectangle are anchored
// to a terminal node at the rectangle's centroid, shared by every line that
// reaches that rectangle.
//
// The resulting graph is best effort: corridors that touch neither another
// line nor a rectangle produce no nodes, and the graph need not be
// connected.
package graph
