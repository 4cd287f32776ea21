// Package sink renders a [hierarchy.FrameSystem] into output formats.
//
//   - [RenderJSON]: machine-readable frames and labels
//   - [RenderSVG]: the grid's characters with frame rectangles drawn over them
//   - [RenderOverlay]: the same picture for a terminal, styled with lipgloss
//
// All sinks draw ActiveFrames only.
package sink
