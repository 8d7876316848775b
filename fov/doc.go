// Package fov computes field of view on tile grids.
//
// Two engines are provided. ComputeDense is a symmetric row-scanning
// shadowcaster over a row-major byte grid; it cuts visibility off at
// Manhattan distance. ComputeSparse is a recursive octant shadowcaster over
// any point space described by a Blocker; it cuts visibility off at
// Euclidean distance. Both are pure functions and safe for concurrent use.
package fov
