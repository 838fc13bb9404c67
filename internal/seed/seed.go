// Package seed loads roster fixtures into a store through the service layer.
package seed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ray8844/saida-de-campo/internal/dto"
	"github.com/ray8844/saida-de-campo/internal/service"
)

// Fixture is the YAML document:
//
//	groups:
//	  - name: Grupo Centro
//	    brothers:
//	      - full_name: Ana Souza
//	        phone: "11 99999-0001"
//	    territories:
//	      - name: Quadra 1
//	        map_url: https://maps.example.com/q1
type Fixture struct {
	Groups []GroupFixture `yaml:"groups"`
}

// GroupFixture one group with its roster
type GroupFixture struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Brothers    []BrotherFixture   `yaml:"brothers"`
	Territories []TerritoryFixture `yaml:"territories"`
}

// BrotherFixture one brother
type BrotherFixture struct {
	FullName string `yaml:"full_name"`
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email"`
}

// TerritoryFixture one territory
type TerritoryFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MapImageURL string `yaml:"map_image_url"`
	MapURL      string `yaml:"map_url"`
}

// Result counts what Apply created and skipped.
type Result struct {
	GroupsCreated      int
	BrothersCreated    int
	TerritoriesCreated int
	Skipped            int
}

// Load decodes a fixture. Unknown keys are rejected.
func Load(r io.Reader) (*Fixture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("fixture is empty")
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks required names.
func (f *Fixture) Validate() error {
	if len(f.Groups) == 0 {
		return fmt.Errorf("fixture has no groups")
	}
	for i, g := range f.Groups {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("groups[%d]: name is required", i)
		}
		for j, b := range g.Brothers {
			if strings.TrimSpace(b.FullName) == "" {
				return fmt.Errorf("groups[%d].brothers[%d]: full_name is required", i, j)
			}
		}
		for j, t := range g.Territories {
			if strings.TrimSpace(t.Name) == "" {
				return fmt.Errorf("groups[%d].territories[%d]: name is required", i, j)
			}
		}
	}
	return nil
}

// Apply creates the fixture's groups, brothers and territories. Entries
// whose name already exists (groups globally, rosters within their group)
// are skipped, so applying a fixture twice is harmless.
func Apply(ctx context.Context, svc *service.Service, f *Fixture, callerID string, logger *zap.Logger) (*Result, error) {
	res := &Result{}

	groups, err := svc.Group.List(ctx, &dto.GroupListRequest{})
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	groupIDs := make(map[string]string, len(groups))
	for _, g := range groups {
		groupIDs[key(g.Name)] = g.ID
	}

	for _, gf := range f.Groups {
		groupID, ok := groupIDs[key(gf.Name)]
		if ok {
			res.Skipped++
		} else {
			g, err := svc.Group.Create(ctx, &dto.CreateGroupRequest{Name: gf.Name, Description: gf.Description}, callerID)
			if err != nil {
				return nil, fmt.Errorf("create group %q: %w", gf.Name, err)
			}
			groupID = g.ID
			groupIDs[key(gf.Name)] = groupID
			res.GroupsCreated++
		}

		known, err := brotherNames(ctx, svc, groupID)
		if err != nil {
			return nil, err
		}
		for _, bf := range gf.Brothers {
			if known[key(bf.FullName)] {
				res.Skipped++
				continue
			}
			req := &dto.CreateBrotherRequest{FullName: bf.FullName, Phone: bf.Phone, Email: bf.Email, GroupID: groupID}
			if _, err := svc.Brother.Create(ctx, req, callerID); err != nil {
				return nil, fmt.Errorf("create brother %q: %w", bf.FullName, err)
			}
			known[key(bf.FullName)] = true
			res.BrothersCreated++
		}

		known, err = territoryNames(ctx, svc, groupID)
		if err != nil {
			return nil, err
		}
		for _, tf := range gf.Territories {
			if known[key(tf.Name)] {
				res.Skipped++
				continue
			}
			req := &dto.CreateTerritoryRequest{
				Name:        tf.Name,
				Description: tf.Description,
				MapImageURL: tf.MapImageURL,
				MapURL:      tf.MapURL,
				GroupID:     groupID,
			}
			if _, err := svc.Territory.Create(ctx, req, callerID); err != nil {
				return nil, fmt.Errorf("create territory %q: %w", tf.Name, err)
			}
			known[key(tf.Name)] = true
			res.TerritoriesCreated++
		}

		logger.Info("group seeded", zap.String("group", gf.Name), zap.String("group_id", groupID))
	}

	return res, nil
}

const pageSize = 100

func brotherNames(ctx context.Context, svc *service.Service, groupID string) (map[string]bool, error) {
	names := make(map[string]bool)
	for page := 1; ; page++ {
		req := &dto.BrotherListRequest{GroupID: groupID, IncludeInactive: true}
		req.Page, req.PageSize = page, pageSize
		items, total, err := svc.Brother.List(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("list brothers: %w", err)
		}
		for _, b := range items {
			names[key(b.FullName)] = true
		}
		if int64(page*pageSize) >= total {
			return names, nil
		}
	}
}

func territoryNames(ctx context.Context, svc *service.Service, groupID string) (map[string]bool, error) {
	names := make(map[string]bool)
	for page := 1; ; page++ {
		req := &dto.TerritoryListRequest{GroupID: groupID, IncludeInactive: true}
		req.Page, req.PageSize = page, pageSize
		items, total, err := svc.Territory.List(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("list territories: %w", err)
		}
		for _, t := range items {
			names[key(t.Name)] = true
		}
		if int64(page*pageSize) >= total {
			return names, nil
		}
	}
}

func key(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
