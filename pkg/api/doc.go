// Package api serves the analysis pipeline over HTTP.
//
// Every analysis endpoint takes a POST body of the form
//
//	{
//	  "grid": {"cells": {"0,0": "H", "1,0": {"char": "i", "color": "#f00"}}},
//	  "options": {"gap_threshold": 2, "zoom": 1.5}
//	}
//
// where options decode over [pipeline.DefaultOptions], so every field is
// optional. Routes:
//
//	POST /v1/blocks            per-line text blocks
//	POST /v1/clusters          clusters and coverage
//	POST /v1/frames            frame system (cached by grid hash)
//	POST /v1/labels            cluster labels
//	POST /v1/render/{format}   rendered artifact (json, svg, png, pdf, txt, dot)
//	GET  /healthz              liveness and version
//
// Errors are JSON bodies carrying the pkg/errors code; see pkg/httputil.
// Each response carries an X-Request-ID header.
package api
