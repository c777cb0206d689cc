package catalog

// Default returns the built-in catalog of simulated models. Descriptions are
// written for embedding quality: each one names the query shapes the model is
// best at, because nearest-neighbor matching happens against this text.
func Default() *Catalog {
	c, err := New([]*Model{
		{
			Name: "Small-Math",
			Description: "Specialized in basic arithmetic operations like addition, " +
				"subtraction, multiplication, and division. Handles simple mathematical " +
				"calculations quickly and efficiently. Best for elementary arithmetic problems.",
			Complexity: LevelLow,
			Cost:       LevelLow,
			Latency:    LevelLow,
		},
		{
			Name: "DeepSeek-Math",
			Description: "Advanced mathematical reasoning model capable of solving algebra, " +
				"calculus, differential equations, and multi-step mathematical problems. " +
				"Provides step-by-step solutions and mathematical proofs. Ideal for complex " +
				"mathematical reasoning tasks.",
			Complexity: LevelMedium,
			Cost:       LevelMedium,
			Latency:    LevelMedium,
		},
		{
			Name: "Research-GPT",
			Description: "High-capacity model designed for in-depth explanations, " +
				"research-level analysis, technical documentation, and comprehensive " +
				"educational content. Excels at breaking down complex topics like machine " +
				"learning architectures, scientific concepts, and theoretical frameworks.",
			Complexity: LevelHigh,
			Cost:       LevelHigh,
			Latency:    LevelHigh,
		},
		{
			Name: "Roast-GPT",
			Description: "Creative and humorous model specialized in witty responses, " +
				"roasting, jokes, and entertaining content. Designed for casual, fun " +
				"interactions with a comedic twist. Perfect for light-hearted banter and " +
				"creative wordplay.",
			Complexity: LevelLow,
			Cost:       LevelLow,
			Latency:    LevelLow,
		},
	})
	if err != nil {
		// The built-in catalog is statically valid.
		panic(err)
	}
	return c
}
