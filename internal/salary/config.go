package salary

import "employee-enrollment/internal/config"

// EntriesFromConfig converts the configured table, falling back to
// DefaultEntries when none is configured.
func EntriesFromConfig(c config.SalaryConfig) []Entry {
	if len(c.Categories) == 0 {
		return DefaultEntries()
	}
	entries := make([]Entry, 0, len(c.Categories))
	for _, cs := range c.Categories {
		entries = append(entries, Entry{Name: cs.Name, Amount: cs.Amount})
	}
	return entries
}
