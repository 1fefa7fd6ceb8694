// Package particle defines the data model shared by every part of the
// simulation:
//
//   - [Type]: closed set of particle kinds, used as a dense table index
//   - [Vec2]: 2D float vector
//   - [Particle]: position, velocity, transient acceleration and type
//   - [Population]: fixed-length, ordered collection of particles
//   - [Palette]: type to colour mapping for renderers
//
// Adding a variant to [Type] grows [NumTypes]; every force table must then be
// NumTypes×NumTypes.
package particle
