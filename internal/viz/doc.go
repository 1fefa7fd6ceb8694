// Package viz renders particle populations in the terminal.
//
//   - [Canvas]: braille pixel grid that remembers the particle type per cell
//   - [Render]: one-shot coloured frame of a population
//   - [Model]: Bubble Tea live view stepping a simulator each frame
//   - [RunInteractive]: preset menu and scene editor in front of [Model]
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to the emitted population
//	+/-   - Double/halve dt
//	F     - Refit the view
//	T     - Cycle themes
//	G     - Toggle GIF recording
//	[]    - Replay recent frames
//	?     - Show help overlay
package viz
