// Package grid models the sparse character canvas that gridtext analyzes.
//
// A [Grid] maps integer coordinates to cells. A cell is either a bare
// character ([Plain]) or a character carrying color metadata ([Styled]);
// every consumer reads the character through the single accessor [CharOf]
// so the two representations never leak into the clustering code.
//
// # Keys
//
// Host applications usually store the canvas keyed by "x,y" strings. Use
// [ParseKey] and [Key.String] to convert between the textual form and [Key]:
//
//	k, err := grid.ParseKey("12,-4")
//	g := grid.New()
//	g.Set(k, grid.Plain("a"))
//
// # Serialization
//
// [ReadJSON] and [WriteJSON] use the host's wire form, where each cell is
// either a JSON string or an object with a "char" field:
//
//	{"cells": {"0,0": "a", "1,0": {"char": "b", "color": "#ff0000"}}}
//
// [FromText] builds a grid from a plain text document, one row per line.
package grid
