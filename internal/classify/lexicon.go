package classify

// Lexicons holds the keyword lists driving intent and complexity classification.
// They are configuration data: a catalog deployment can override them from YAML,
// and DefaultLexicons provides the built-in set.
type Lexicons struct {
	Creative     []string `yaml:"creative"`
	Mathematical []string `yaml:"mathematical"`
	Explanatory  []string `yaml:"explanatory"`

	HighComplexity   []string `yaml:"high_complexity"`
	MediumComplexity []string `yaml:"medium_complexity"`
	LowComplexity    []string `yaml:"low_complexity"`
}

// DefaultLexicons returns the built-in keyword lists.
func DefaultLexicons() *Lexicons {
	return &Lexicons{
		Creative: []string{
			"roast", "joke", "funny", "humor", "creative", "story",
			"poem", "imagine", "pretend", "make me laugh",
		},
		Mathematical: []string{
			"solve", "equation", "derivative", "integral", "matrix",
			"algebra", "calculus", "theorem", "proof", "differential",
			"formula", "calculate", "optimization",
		},
		Explanatory: []string{
			"explain", "what is", "how does", "why", "describe",
			"tell me about", "definition", "meaning", "clarify",
			"elaborate", "detail", "architecture", "overview",
		},
		HighComplexity: []string{
			"explain", "describe", "architecture", "how does", "why does",
			"comprehensive", "detailed", "in-depth", "analysis", "research",
			"differential", "integral", "theorem", "proof", "derive",
			"framework", "mechanism", "implementation",
		},
		MediumComplexity: []string{
			"solve", "calculate", "equation", "formula", "algorithm",
			"algebra", "calculus", "matrix", "function", "optimize",
			"compare", "contrast", "evaluate",
		},
		LowComplexity: []string{
			"add", "subtract", "multiply", "divide", "sum", "total",
			"simple", "basic", "quick", "what is",
		},
	}
}

// merge fills any empty list in l from the defaults so that a partial
// override file still yields a complete lexicon set.
func (l *Lexicons) merge(defaults *Lexicons) {
	if len(l.Creative) == 0 {
		l.Creative = defaults.Creative
	}
	if len(l.Mathematical) == 0 {
		l.Mathematical = defaults.Mathematical
	}
	if len(l.Explanatory) == 0 {
		l.Explanatory = defaults.Explanatory
	}
	if len(l.HighComplexity) == 0 {
		l.HighComplexity = defaults.HighComplexity
	}
	if len(l.MediumComplexity) == 0 {
		l.MediumComplexity = defaults.MediumComplexity
	}
	if len(l.LowComplexity) == 0 {
		l.LowComplexity = defaults.LowComplexity
	}
}
