package normalize

import (
	"strings"

	"github.com/yaklabco/pyprojectfmt/pkg/config"
	"github.com/yaklabco/pyprojectfmt/pkg/pep508"
	"github.com/yaklabco/pyprojectfmt/pkg/tomlcst"
)

// FixProject normalizes the [project] table. Sub-tables and inline tables
// are first flattened into dotted keys so the remaining passes see a single
// flat table.
func FixProject(tables *Tables, cfg *config.Config) error {
	CollapseSubTables(tables, "project")
	block, ok := tables.Get("project")
	if !ok {
		return nil
	}
	for _, prefix := range ExpandedProjectKeys {
		ExpandInlineTables(block, prefix)
	}

	if err := SynthesizeClassifiers(block, cfg.MinSupportedPython, cfg.MaxSupportedPython); err != nil {
		return err
	}

	normalizeRequirement := requirementNormalizer(cfg.KeepFullVersion)
	forEntries(block, func(key string, entry *tomlcst.Element) {
		value := tomlcst.ValueOf(entry)
		switch {
		case key == "name":
			rewriteString(value, pep508.CanonicalName, true)
		case key == "description":
			rewriteString(value, singleLine, false)
		case key == "dependencies" || strings.HasPrefix(key, "optional-dependencies."):
			TransformArray(value, normalizeRequirement)
			SortArray(value, pep508.RequirementName)
		case key == "keywords" || key == "dynamic" || key == "classifiers":
			SortArray(value, strings.ToLower)
		}
	})

	ReorderKeys(block, ProjectKeys)
	return nil
}

// rewriteString applies transform to a string value and writes the result
// as a basic string when the text changed or the input was multi-line.
// With always set, any non-basic string is rewritten as well.
func rewriteString(value *tomlcst.Element, transform func(string) string, always bool) {
	inner := tomlcst.Inner(value)
	if inner == nil || !inner.Kind.IsString() {
		return
	}
	text, err := tomlcst.StringValue(inner)
	if err != nil {
		return
	}
	out := transform(text)
	multiline := inner.Kind == tomlcst.KindMultiLineBasicString || inner.Kind == tomlcst.KindMultiLineLiteralString
	if out != text || multiline || (always && inner.Kind != tomlcst.KindBasicString) {
		replaceScalar(value, tomlcst.NewBasicString(out))
	}
}

// singleLine joins the trimmed, non-empty lines of s with single spaces.
func singleLine(s string) string {
	var parts []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
