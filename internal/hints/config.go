package hints

// Config holds generation settings shared by hints and approach checks.
type Config struct {
	MaxTokens   int
	Temperature float64

	// DecomposeMaxTokens bounds task decomposition replies, which carry
	// several tasks with their questions and need more room than a hint.
	DecomposeMaxTokens int
}

// DefaultConfig returns sensible defaults for tutoring replies.
func DefaultConfig() Config {
	return Config{
		MaxTokens:          512,
		Temperature:        0.7,
		DecomposeMaxTokens: 4096,
	}
}
