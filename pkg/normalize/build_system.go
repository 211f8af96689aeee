package normalize

import (
	"strings"

	"github.com/yaklabco/pyprojectfmt/pkg/pep508"
	"github.com/yaklabco/pyprojectfmt/pkg/tomlcst"
)

// FixBuildSystem normalizes the [build-system] table: requirements are
// normalized and sorted by package name, backend paths are sorted and the
// keys are put in canonical order.
func FixBuildSystem(tables *Tables, keepFullVersion bool) {
	block, ok := tables.Get("build-system")
	if !ok {
		return
	}
	forEntries(block, func(key string, entry *tomlcst.Element) {
		value := tomlcst.ValueOf(entry)
		switch key {
		case "requires":
			TransformArray(value, requirementNormalizer(keepFullVersion))
			SortArray(value, pep508.RequirementName)
		case "backend-path":
			SortArray(value, strings.ToLower)
		}
	})
	ReorderKeys(block, BuildSystemKeys)
}

// requirementNormalizer returns a transform that normalizes PEP 508
// requirements and leaves unparseable strings as written.
func requirementNormalizer(keepFullVersion bool) func(string) string {
	return func(req string) string {
		normalized, err := pep508.Normalize(req, keepFullVersion)
		if err != nil {
			return req
		}
		return normalized
	}
}
