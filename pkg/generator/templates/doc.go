// Package templates is the static catalog of artifacts generated per
// deployment target and of the per-language script bodies they embed.
//
// Select returns the artifact specs for a target in emission order.
// ScriptVariant returns the script body for an artifact and language,
// keyed on the language bucket:
//
//	body, err := templates.ScriptVariant(templates.ArtifactBuildScript, descriptor.LanguageSpring)
//
// Relative paths may contain "<name>" tokens that are resolved against the
// parameter set with ResolvePath, e.g. "chart/<chart-name>/values.yaml".
package templates
