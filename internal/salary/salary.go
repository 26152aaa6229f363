package salary

// Others is the free-input category; it never has a default salary.
const Others = "Others"

// Entry is one predefined category and its default salary.
type Entry struct {
	Name   string
	Amount int64
}

// DefaultEntries returns the built-in category table.
func DefaultEntries() []Entry {
	return []Entry{
		{Name: "Janitor", Amount: 50000},
		{Name: "Security", Amount: 100000},
		{Name: "Receptionist", Amount: 70000},
		{Name: "Attendant", Amount: 50000},
		{Name: "Cleaner", Amount: 50000},
	}
}

// Resolver looks up default salaries for predefined categories.
type Resolver struct {
	amounts map[string]int64
	order   []string
}

// NewResolver builds a resolver from entries. Later duplicates override
// earlier ones; blank names and Others are ignored.
func NewResolver(entries []Entry) *Resolver {
	r := &Resolver{amounts: make(map[string]int64, len(entries))}
	for _, e := range entries {
		if e.Name == "" || e.Name == Others {
			continue
		}
		if _, ok := r.amounts[e.Name]; !ok {
			r.order = append(r.order, e.Name)
		}
		r.amounts[e.Name] = e.Amount
	}
	return r
}

// Resolve returns the default salary for category and true, or 0 and false
// when the category is not predefined and the salary is free input.
func (r *Resolver) Resolve(category string) (int64, bool) {
	amount, ok := r.amounts[category]
	return amount, ok
}

// Categories lists the predefined categories in table order, then Others.
func (r *Resolver) Categories() []string {
	out := make([]string, 0, len(r.order)+1)
	out = append(out, r.order...)
	return append(out, Others)
}
