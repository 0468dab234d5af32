// Package layout generates target positions for tiles in each of the preset
// spatial arrangements.
//
// Generators are pure functions of the tile count and a Params value:
//   - Table:  fixed-width rows on the z=0 plane, rows grow downward without clamping
//   - Sphere: golden-spiral style distribution on a sphere of fixed radius
//   - Helix:  two interleaved strands, 180° apart, descending along Y
//   - Grid:   cols × rows × layers voxel lattice, layers grow without wraparound
//
// Compute builds all four for a given count; the result is read-only.
package layout
