// Package viz draws the orrery in the terminal.
//
// The scene is projected through a [Camera] onto a braille [Canvas], two
// by four sub-pixels per cell, and wrapped in a Bubble Tea [Model] that
// drives a shared clock.
//
// # Key Bindings
//
//	Space  - Play/pause
//	+/-    - Faster/slower
//	[ ]    - Back/forward 30 days
//	, .    - Back/forward 1 day
//	N      - Jump to now
//	Arrows - Rotate the camera
//	Z/X    - Zoom in/out
//	V      - Top-down view
//	Tab    - Select next body
//	T      - Cycle color themes
//	?      - Show help
package viz
