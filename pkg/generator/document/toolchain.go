package document

import (
	"fmt"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/params"
)

// buildToolchain renders .bluemix/toolchain.yml: a hosted git repo, a
// delivery pipeline fed by pipeline.yml, and the deploy form defined by
// deploy.json.
func buildToolchain(a *Assembler) ([]byte, error) {
	b := &binder{set: a.params}

	env := mapping("REPO", "repo")
	for _, f := range a.params.DeployFields() {
		env.Content = append(env.Content, str(f.EnvVar), b.node(params.EnvRef(f.Key)))
	}
	env.Content = append(env.Content, str("CLUSTER_NAMESPACE"), b.node(params.KubeNamespace))

	deployParams := mapping(
		params.KubeClusterName, b.node(params.KubeClusterName),
		params.APIKey, b.node(params.APIKey),
		params.ImagePullSecretName, b.node(params.ImagePullSecretName),
		params.ImageRegistryToken, b.node(params.ImageRegistryToken),
	)

	doc := mapping(
		"version", "2",
		"template", mapping(
			"name", fmt.Sprintf("Deploy %s to Kubernetes", b.text(params.AppName)),
			"description", "Toolchain that builds the application image and deploys its Helm chart to a Kubernetes cluster",
			"required", seq("build", "repo"),
		),
		"toolchain", mapping(
			"name", b.text(params.ChartName)+"-{{timestamp}}",
		),
		"repo", mapping(
			"service_id", "hostedgit",
			"parameters", mapping(
				"repo_name", "{{toolchain.name}}",
				"repo_url", b.node(params.RepoURL),
				"type", "clone",
				"has_issues", true,
				"enable_traceability", true,
			),
		),
		"build", mapping(
			"service_id", "pipeline",
			"parameters", mapping(
				"services", seq("repo"),
				"name", "{{services.repo.parameters.repo_name}}",
				"ui-pipeline", true,
				"configuration", mapping(
					"content", mapping("$text", "pipeline.yml"),
					"env", env,
					"execute", true,
				),
			),
		),
		"deploy", mapping(
			"schema", mapping("$ref", "deploy.json"),
			"service-category", "pipeline",
			"parameters", deployParams,
		),
	)

	if b.err != nil {
		return nil, b.err
	}
	return encodeYAML(doc)
}
