// Package viz renders the sandbox in a terminal using Bubble Tea.
//
//   - [Model]: the live sandbox view with an auto-spawner feeding bodies
//   - [Canvas]: Braille-based pixel canvas for bodies, trails, and the star
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset the sandbox
//	S     - Launch a body by hand
//	?     - Show help overlay
package viz
