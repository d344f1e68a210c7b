package monitor

// Len returns the number of paths in the cooldown table.
func (f *Filter) Len() int {
	return len(f.last)
}
