package script

// ValidationResult reports whether a source parses cleanly.
type ValidationResult struct {
	Valid   bool
	Program *Program
	Errors  []string
}

// Validate parses source and reports the outcome. It performs no
// semantic checks beyond the grammar: referencing an unregistered
// model, for example, is only detected at execution time.
func Validate(source string) ValidationResult {
	program, errs := Parse(source)
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return ValidationResult{Valid: false, Errors: msgs}
	}
	return ValidationResult{Valid: true, Program: program}
}
