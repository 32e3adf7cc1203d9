// Package voronoi exposes the public query surface for 3D Voronoi
// tessellation: a context holding labeled sites and boundary walls,
// per-site cell records, and a Lloyd-relaxation step.
package voronoi
