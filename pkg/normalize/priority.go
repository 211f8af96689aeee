package normalize

// Table and key priority lists. Callers must treat them as read-only.
//
//nolint:gochecknoglobals // Immutable domain data.
var (
	// TablePriority is the canonical order of top-level tables.
	TablePriority = []string{
		"",
		"build-system",
		"project",
		// Build backends.
		"tool.poetry",
		"tool.poetry-dynamic-versioning",
		"tool.pdm",
		"tool.setuptools",
		"tool.distutils",
		"tool.setuptools_scm",
		"tool.hatch",
		"tool.flit",
		"tool.scikit-build",
		"tool.meson-python",
		"tool.maturin",
		"tool.whey",
		"tool.py-build-cmake",
		"tool.sphinx-theme-builder",
		// Builders.
		"tool.cibuildwheel",
		// Formatters and linters.
		"tool.autopep8",
		"tool.black",
		"tool.ruff",
		"tool.isort",
		"tool.flake8",
		"tool.pycln",
		"tool.nbqa",
		"tool.pylint",
		"tool.repo-review",
		"tool.codespell",
		"tool.docformatter",
		"tool.pydoclint",
		"tool.tomlsort",
		"tool.check-manifest",
		"tool.check-sdist",
		"tool.check-wheel-contents",
		"tool.deptry",
		"tool.pyproject-fmt",
		// Testing.
		"tool.pytest",
		"tool.pytest_env",
		"tool.pytest-enabler",
		"tool.coverage",
		// Runners.
		"tool.doit",
		"tool.spin",
		"tool.tox",
		// Releasers and version bumpers.
		"tool.bumpversion",
		"tool.jupyter-releaser",
		"tool.tbump",
		"tool.towncrier",
		"tool.vendoring",
		// Type checking.
		"tool.mypy",
		"tool.pyright",
	}

	// BuildSystemKeys is the key order inside [build-system].
	BuildSystemKeys = []string{"", "build-backend", "requires", "backend-path"}

	// ProjectKeys is the key order inside [project]. The trailing keys may
	// be written inline or as dotted keys, so they go last.
	ProjectKeys = []string{
		"",
		"name",
		"version",
		"description",
		"readme",
		"keywords",
		"license",
		"license-files",
		"maintainers",
		"authors",
		"requires-python",
		"classifiers",
		"dynamic",
		"dependencies",
		"optional-dependencies",
		"urls",
		"scripts",
		"gui-scripts",
		"entry-points",
	}

	// ExpandedProjectKeys are the [project] keys whose inline tables are
	// rewritten as dotted keys.
	ExpandedProjectKeys = []string{
		"entry-points",
		"urls",
		"scripts",
		"gui-scripts",
		"optional-dependencies",
	}
)
