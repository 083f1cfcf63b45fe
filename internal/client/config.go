package client

// Config holds connection settings for the planning server.
type Config struct {
	Endpoint   string
	TimeoutMs  int
	MaxRetries int
	// Strict surfaces failures as errors instead of falling back to mock
	// data.
	Strict bool
}

func DefaultConfig() Config {
	return Config{
		Endpoint:   "http://127.0.0.1:8080",
		TimeoutMs:  5000,
		MaxRetries: 1,
	}
}
