package rotation

import (
	"math/rand/v2"

	"github.com/ray8844/saida-de-campo/internal/model"
	pkgerrors "github.com/ray8844/saida-de-campo/pkg/errors"
)

// Input is everything Generate needs for one (group, date).
type Input struct {
	GroupID string
	// Date in YYYY-MM-DD form.
	Date        string
	Brothers    []model.Brother
	Territories []model.Territory
	// History is the recency window of the group's assignments.
	History []model.Assignment
	// Existing holds the assignments already stored for (GroupID, Date).
	Existing []model.Assignment
	// Policy overrides the generator policy when set.
	Policy Policy
}

// Generator pairs brothers with territories. It holds no mutable state and
// is safe for concurrent use as long as its ShuffleFunc is.
type Generator struct {
	policy  Policy
	shuffle ShuffleFunc
}

// Option configures a Generator.
type Option func(*Generator)

// NewGenerator creates a generator.
//
// Parameters:
//   - opts: optional configuration (WithPolicy, WithShuffle)
//
// Returns:
//   - *Generator: single-pair policy and math/rand/v2 tie-breaks by default
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		policy:  PolicySingle,
		shuffle: rand.Shuffle,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithPolicy sets the default batch policy. The zero Policy is ignored.
func WithPolicy(p Policy) Option {
	return func(g *Generator) {
		if p != "" {
			g.policy = p
		}
	}
}

// WithShuffle sets the tie-break randomness source. Tests pass a seeded
// *rand.Rand's Shuffle method.
func WithShuffle(fn ShuffleFunc) Option {
	return func(g *Generator) {
		if fn != nil {
			g.shuffle = fn
		}
	}
}

// Policy returns the default batch policy.
func (g *Generator) Policy() Policy { return g.policy }

// Generate produces the new assignments of an outing. It either returns the
// complete batch or an error; it never returns a partial batch.
//
// Errors:
//   - Validation: missing group id, malformed date, unknown policy, or a
//     roster entry of another group
//   - Conflict: Existing is not empty
//   - InsufficientData: no active brother or no active territory
func (g *Generator) Generate(in Input) ([]model.Assignment, error) {
	if in.GroupID == "" {
		return nil, ErrGroupRequired
	}
	day, err := model.ParseServiceDate(in.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	date := day.Format(model.DateLayout)

	policy := g.policy
	if in.Policy != "" {
		policy = in.Policy
	}
	if policy != PolicySingle && policy != PolicyFull {
		return nil, ErrInvalidPolicy
	}

	if len(in.Existing) > 0 {
		return nil, ErrOutingExists
	}

	brothers, err := activeBrothers(in.GroupID, in.Brothers)
	if err != nil {
		return nil, err
	}
	territories, err := activeTerritories(in.GroupID, in.Territories)
	if err != nil {
		return nil, err
	}
	if len(brothers) == 0 {
		return nil, ErrNoBrothers
	}
	if len(territories) == 0 {
		return nil, ErrNoTerritories
	}

	brotherOrder := Order(brothers,
		LastUsed(in.History, func(a model.Assignment) string { return a.BrotherID }), g.shuffle)
	territoryOrder := Order(territories,
		LastUsed(in.History, func(a model.Assignment) string { return a.TerritoryID }), g.shuffle)

	// Both orderings hold unique ids, so taking the first n of each never
	// books anyone twice.
	n := policy.batchSize(len(brotherOrder), len(territoryOrder))
	out := make([]model.Assignment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Assignment{
			GroupID:     in.GroupID,
			ServiceDate: date,
			BrotherID:   brotherOrder[i],
			TerritoryID: territoryOrder[i],
			Status:      model.AssignmentGenerated,
		})
	}
	return out, nil
}

// activeBrothers returns the unique ids of the active brothers, rejecting
// entries that belong to another group.
func activeBrothers(groupID string, roster []model.Brother) ([]string, error) {
	ids := make([]string, 0, len(roster))
	seen := make(map[string]struct{}, len(roster))
	for _, b := range roster {
		if b.GroupID != groupID {
			return nil, pkgerrors.Validationf("brother %s does not belong to group %s", b.BrotherID, groupID)
		}
		if !b.IsActive {
			continue
		}
		if _, dup := seen[b.BrotherID]; dup {
			continue
		}
		seen[b.BrotherID] = struct{}{}
		ids = append(ids, b.BrotherID)
	}
	return ids, nil
}

func activeTerritories(groupID string, roster []model.Territory) ([]string, error) {
	ids := make([]string, 0, len(roster))
	seen := make(map[string]struct{}, len(roster))
	for _, t := range roster {
		if t.GroupID != groupID {
			return nil, pkgerrors.Validationf("territory %s does not belong to group %s", t.TerritoryID, groupID)
		}
		if !t.IsActive {
			continue
		}
		if _, dup := seen[t.TerritoryID]; dup {
			continue
		}
		seen[t.TerritoryID] = struct{}{}
		ids = append(ids, t.TerritoryID)
	}
	return ids, nil
}
