/*
Package flowdb holds the shared data model of a hierarchical analog layout
flow. A design is decomposed into hierarchy levels; each level is a Graph
holding its devices and sub-blocks (nodes), their connectivity (pins, nets),
the floorplan constraints for that level and the layout payload the
downstream tools produce.

Structural elements are addressed by dense zero-based handles issued by the
Alloc methods. Downstream stages mutate a graph in place; before exploring a
risky transformation a caller takes a Backup, attempts the transformation,
and calls Restore on failure.
*/
package flowdb
