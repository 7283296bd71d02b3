package demo

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/goliatone/go-autocomplete/components/timezones"
	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/goliatone/go-autocomplete/pkg/fieldconfig"
	"github.com/goliatone/go-autocomplete/pkg/sources/sqlsource"
)

//go:embed fields.yaml
var fieldsYAML []byte

// TeamParam is the extra search parameter that narrows people to one team.
const TeamParam = "team"

// Sources returns the item sources referenced by fields.yaml.
func Sources(db *sql.DB) (map[string]autocomplete.ItemSource, error) {
	people, err := sqlsource.New(db, sqlsource.Table{
		Name:          "person",
		KeyColumn:     "id",
		LabelColumn:   "name",
		SearchColumns: []string{"name", "email"},
	}, sqlsource.WithScope(teamScope), sqlsource.WithSearchLimit(50))
	if err != nil {
		return nil, fmt.Errorf("demo: people source: %w", err)
	}
	teams, err := sqlsource.New(db, sqlsource.Table{
		Name:        "team",
		KeyColumn:   "id",
		LabelColumn: "name",
	})
	if err != nil {
		return nil, fmt.Errorf("demo: team source: %w", err)
	}
	zones, err := timezones.NewSource()
	if err != nil {
		return nil, fmt.Errorf("demo: timezone source: %w", err)
	}
	return map[string]autocomplete.ItemSource{
		"people":    people,
		"teams":     teams,
		"timezones": zones,
	}, nil
}

// teamScope only narrows searches; toggles do not send the team value, so
// selected people keep resolving after the team changes.
func teamScope(ctx context.Context) (string, []any) {
	team := autocomplete.ParamsFromContext(ctx).Get(TeamParam)
	if team == "" {
		return "", nil
	}
	return "team_id = ?", []any{team}
}

// NewRegistry registers the field types of fields.yaml against sources and
// seals the registry.
func NewRegistry(sources map[string]autocomplete.ItemSource) (*autocomplete.Registry, error) {
	defs, err := fieldconfig.Parse(fieldsYAML, "fields.yaml")
	if err != nil {
		return nil, err
	}
	reg := autocomplete.NewRegistry()
	if err := fieldconfig.Apply(reg, defs, sources); err != nil {
		return nil, err
	}
	reg.Seal()
	return reg, nil
}
