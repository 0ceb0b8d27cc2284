package text

// Pluralize appends "s" to noun unless count is exactly one.
func Pluralize(noun string, count int) string {
	if count == 1 {
		return noun
	}

	return noun + "s"
}
