package collector

import "context"

// Social is the social-sentiment collector stub. Sentiment sources (platform
// APIs) are paid or rate-restricted, so the collector permanently self-skips;
// it exists so the scheduler proves out handling a collector that never
// succeeds without special-casing it.
type Social struct{}

func NewSocial() *Social { return &Social{} }

func (s *Social) Name() string { return "social" }

func (s *Social) Configured() (bool, string) {
	return false, "not implemented"
}

func (s *Social) Run(_ context.Context) Outcome {
	return Skipped("not implemented")
}
