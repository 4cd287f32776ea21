// Package stage generates procedural text layouts for exercising the
// clustering pipeline.
//
// A stage mimics a small poster: a title above an image area, an optional
// caption below it, an optional sidebar with header, divider and body, an
// optional centered footer and a few floating labels. Text is drawn from
// fixed word banks. [Generate] is deterministic for a given seed, so
// generated stages double as test fixtures.
//
//	st := stage.Generate(stage.Options{Seed: 7, Layout: "poster"})
//	g := st.Grid()
package stage
