// Package ast contains the syntax tree for weave programs.
// Nodes are kind-discriminated structs with per-kind payload pointers.
// Programs are single instrumented fragments, so nodes are allocated
// directly and never pooled.
package ast
