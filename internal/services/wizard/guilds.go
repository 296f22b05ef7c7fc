package wizard

import "context"

// StaticGuildCatalog serves a fixed guild list from configuration
type StaticGuildCatalog struct {
	names []string
}

// NewStaticGuildCatalog creates a catalog over the given guild names. A nil
// or empty list makes the wizard skip the guild step.
func NewStaticGuildCatalog(names []string) *StaticGuildCatalog {
	return &StaticGuildCatalog{names: names}
}

// Guilds returns the configured guild names
func (c *StaticGuildCatalog) Guilds(ctx context.Context) ([]string, error) {
	return c.names, nil
}
