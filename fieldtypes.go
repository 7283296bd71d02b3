package autocomplete

import (
	"io/fs"

	core "github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/goliatone/go-autocomplete/pkg/fieldconfig"
)

// NewServiceFromFS registers the field types declared in the YAML and JSON
// files of fsys, binding each to its named source. extra field types built in
// code are registered alongside.
func NewServiceFromFS(fsys fs.FS, sources map[string]ItemSource, extra ...FieldType) (*Service, error) {
	set, err := fieldconfig.LoadFS(fsys)
	if err != nil {
		return nil, err
	}
	reg := core.NewRegistry()
	if err := fieldconfig.Apply(reg, set.Definitions(), sources); err != nil {
		return nil, err
	}
	for _, field := range extra {
		if err := reg.Register(field); err != nil {
			return nil, err
		}
	}
	reg.Seal()
	return core.NewService(reg), nil
}
