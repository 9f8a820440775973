// Package texture paints equirectangular planet textures from layered
// gradient noise.
//
// A [Request] names a planet [Type] and a few knobs; [Synthesize] returns a
// square straight-alpha RGBA buffer that belongs to the caller. Painting
// is deterministic: every random placement (craters, storms, flares,
// particles) is drawn from a generator seeded with [Request.Seed], and
// the sun's plasma phase comes from [Request.TimeSeed] rather than the
// wall clock. Two equal requests always produce byte-identical images.
//
// Each type has its own painter. They share only the noise field, the
// drawing surface and the final brightness/contrast pass.
//
// Synthesis cost is proportional to Resolution². Callers that draw the
// same body every frame should memoise results; see package texcache.
package texture
