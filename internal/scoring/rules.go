package scoring

// Rule is one step of a suggestion cascade. Emit returns the messages the rule
// contributes for input, usually zero or one.
type Rule[T any] struct {
	Name string
	Emit func(T) []string
}

// Cascade is an ordered rule table with an output cap and a message used when
// no rule fires.
type Cascade[T any] struct {
	Rules    []Rule[T]
	Limit    int
	Fallback string
}

// Apply evaluates the rules top to bottom and truncates the output to Limit.
// Later rules are dropped once the cap is reached.
func (c Cascade[T]) Apply(input T) []string {
	var out []string
	for _, r := range c.Rules {
		out = append(out, r.Emit(input)...)
	}
	if len(out) == 0 && c.Fallback != "" {
		out = append(out, c.Fallback)
	}
	if c.Limit > 0 && len(out) > c.Limit {
		out = out[:c.Limit]
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// When builds a rule that emits message when pred holds.
func When[T any](name string, pred func(T) bool, message func(T) string) Rule[T] {
	return Rule[T]{
		Name: name,
		Emit: func(in T) []string {
			if !pred(in) {
				return nil
			}
			return []string{message(in)}
		},
	}
}

// First returns at most n leading elements of s.
func First[S ~[]E, E any](s S, n int) S {
	if len(s) > n {
		return s[:n]
	}
	return s
}
