package actionmenu

// Direction is the traversal direction for keyboard navigation.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// FirstEnabledIndex returns the index of the first enabled option, or -1.
func FirstEnabledIndex(options []Option) int {
	for i, opt := range options {
		if opt.Enabled() {
			return i
		}
	}
	return -1
}

// NextEnabledIndex returns the next enabled option after current in dir,
// wrapping around the ends. Disabled options are skipped. When current is
// out of range, traversal starts before the first (Forward) or after the
// last (Backward) option. Returns -1 when no option is enabled.
func NextEnabledIndex(options []Option, current int, dir Direction) int {
	n := len(options)
	if n == 0 {
		return -1
	}
	step := 1
	if dir == Backward {
		step = -1
	}
	if current < 0 || current >= n {
		if step > 0 {
			current = -1
		} else {
			current = n
		}
	}
	for i := 1; i <= n; i++ {
		idx := ((current+step*i)%n + n) % n
		if options[idx].Enabled() {
			return idx
		}
	}
	return -1
}
