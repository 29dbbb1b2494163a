package testutil

// WithStandardFragments adds the standard fixture set: a Git group under
// Project, a Docker group under Tools, and a hinted root-level action.
// Mirrors the menus service tests.
func (b *Builder) WithStandardFragments() *Builder {
	return b.
		WithFragment("10-git.yaml",
			Item("Git", At("Project"),
				Items(
					Item("Status", Exec("git status -sb"), Description("Working tree summary")),
					Item("Log", Exec("git log --oneline -20")),
					Item("Pull", Exec("git pull --ff-only")),
				))).
		WithFragment("20-docker.yaml",
			Item("Docker", At("Tools"),
				Items(
					Item("PS", Exec("docker ps")),
					Item("Images", Exec("docker image ls")),
				))).
		WithFragment("30-scratch.yaml",
			Item("Scratch", Exec("$EDITOR ~/scratch.md"), Before("Help")))
}

// WithHintedFragments adds items exercising every placement hint under the
// Tools group.
func (b *Builder) WithHintedFragments() *Builder {
	return b.
		WithFragment("40-hints.yaml",
			Item("Uptime", At("Tools"), Exec("uptime"), Begin()),
			Item("Disk", At("Tools"), Exec("df -h"), End()),
			Item("Memory", At("Tools"), Exec("free -m"), After("Docker")))
}

// WithBrokenFragment adds a file that parses as YAML but fails fragment
// validation.
func (b *Builder) WithBrokenFragment() *Builder {
	return b.WithRawFile("99-broken.yaml", "items:\n  - name: Broken\n")
}
