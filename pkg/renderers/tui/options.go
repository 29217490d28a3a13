package tui

// Option configures the TUI collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver used by the collector.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithConfirmSubmit controls whether a final yes/no prompt gates submission.
// It defaults to on; batch callers can switch it off.
func WithConfirmSubmit(enabled bool) Option {
	return func(c *Collector) {
		c.confirmSubmit = enabled
	}
}
