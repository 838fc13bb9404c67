package rotation

// Policy decides how many pairs one generation produces.
type Policy string

const (
	// PolicySingle produces exactly one pair per (group, date).
	PolicySingle Policy = "single"
	// PolicyFull pairs as many brothers and territories as the smaller
	// roster allows.
	PolicyFull Policy = "full"
)

// ParsePolicy converts a configuration or request value into a Policy.
// The empty string yields the zero Policy, which means "generator default".
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return "", nil
	case PolicySingle, PolicyFull:
		return Policy(s), nil
	default:
		return "", ErrInvalidPolicy
	}
}

// batchSize returns the number of pairs to emit for the given roster sizes.
func (p Policy) batchSize(brothers, territories int) int {
	if p == PolicyFull {
		return min(brothers, territories)
	}
	return 1
}
