// Package rotation builds the brother/territory pairs of an outing.
//
// The generator is pure: it receives the active rosters, a bounded slice of
// recent assignments and the assignments already present for the target
// (group, date), and returns new assignments without touching storage.
// Selection prefers brothers and territories that were never used or used
// longest ago inside the history window; candidates with the same last use
// are shuffled among themselves only.
//
// Example:
//
//	gen := rotation.NewGenerator(rotation.WithPolicy(rotation.PolicyFull))
//	items, err := gen.Generate(rotation.Input{
//	    GroupID:     groupID,
//	    Date:        "2024-01-07",
//	    Brothers:    brothers,
//	    Territories: territories,
//	    History:     history,
//	    Existing:    existing,
//	})
package rotation
