// Package analysis post-processes simulation output.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectral content of a sampled metric series
//   - [Sweep]: run one scene across a range of a single force-table entry
//   - [Phase]: position/velocity portrait of one particle across frames
//
// # Sweeps
//
// A sweep keeps the seed fixed, so every point starts from the same
// emitted population and only the swept entry differs:
//
//	sw := &analysis.Sweep{Base: cfg, A: particle.Red, B: particle.Blue,
//		Min: -1, Max: 1, Points: 21, Metric: "min_separation"}
//	points, err := sw.Run(ctx)
package analysis
