package stage

var (
	adjectives = []string{
		"quantum", "neural", "cosmic", "synthetic", "ethereal", "digital",
		"organic", "crystalline", "ambient", "fractal", "temporal", "spatial",
		"kinetic", "radiant", "sublime", "arcane", "prismatic", "infinite",
	}

	nouns = []string{
		"matrix", "topology", "manifold", "field", "lattice", "network",
		"system", "architecture", "framework", "structure", "membrane", "grid",
		"interface", "protocol", "substrate", "apparatus", "mechanism", "circuit",
	}

	verbs = []string{
		"transform", "synthesize", "modulate", "cascade", "oscillate", "resonate",
		"propagate", "converge", "emerge", "iterate", "evolve", "compose",
		"distribute", "aggregate", "encode", "decode", "transmit", "reflect",
	}

	techWords = []string{
		"algorithm", "protocol", "bandwidth", "latency", "throughput", "entropy",
		"coherence", "interference", "resonance", "coupling", "gradient", "flux",
		"tensor", "vector", "scalar", "eigen", "fourier", "laplace", "kernel",
	}

	sidebarHeaders = []string{"NOTES", "META", "INFO", "DATA", "CONTEXT"}
)

func allWords() []string {
	out := make([]string, 0, len(adjectives)+len(nouns)+len(verbs)+len(techWords))
	out = append(out, adjectives...)
	out = append(out, nouns...)
	out = append(out, verbs...)
	return append(out, techWords...)
}
