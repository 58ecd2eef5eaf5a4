package document

import (
	"gopkg.in/yaml.v3"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/params"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/templates"
)

// Pipeline stage and job identifiers.
const (
	BuildStageName       = "Build Stage"
	BuildJobName         = "Build"
	DeployStageName      = "Deploy Stage"
	DeployJobName        = "Deploy"
	ContainerBuilderType = "ibm.devops.services.pipeline.container.builder"
)

// deployStageProperties lists the environment properties of the deploy
// stage consumed by kube_deploy.sh.
func deployStageProperties(b *binder) *yaml.Node {
	property := func(name string, value *yaml.Node, typ string) *yaml.Node {
		return mapping("name", name, "value", value, "type", typ)
	}
	return seq(
		property("CLUSTER_NAMESPACE", b.node(params.KubeNamespace), "text"),
		property("CHART_NAME", b.node(params.ChartName), "text"),
		property("IMAGE_PULL_SECRET_NAME", str("${IMAGE_PULL_SECRET_NAME}"), "text"),
		property("IMAGE_REGISTRY_TOKEN", str("${IMAGE_REGISTRY_TOKEN}"), "secure"),
	)
}

// buildPipeline renders .bluemix/pipeline.yml with a container build stage
// followed by a Kubernetes deploy stage.
func buildPipeline(a *Assembler) ([]byte, error) {
	b := &binder{set: a.params}

	buildScript, err := a.scripts.Script(templates.ArtifactBuildScript, a.desc.Language)
	if err != nil {
		return nil, err
	}
	deployScript, err := a.scripts.Script(templates.ArtifactDeployScript, a.desc.Language)
	if err != nil {
		return nil, err
	}

	buildStage := mapping(
		"name", BuildStageName,
		"inputs", seq(mapping(
			"type", "git",
			"branch", "master",
			"service", "${REPO}",
		)),
		"triggers", seq(mapping("type", "commit")),
		"jobs", seq(mapping(
			"name", BuildJobName,
			"type", "builder",
			"extension_id", ContainerBuilderType,
			"target", mapping(
				"api_key", "${API_KEY}",
			),
			"build_type", "cr",
			"IMAGE_NAME", b.node(params.ImageName),
			"USE_CACHED_LAYERS", "true",
			"COMMAND", block(buildScript),
		)),
	)

	deployStage := mapping(
		"name", DeployStageName,
		"inputs", seq(mapping(
			"type", "job",
			"stage", BuildStageName,
			"job", BuildJobName,
		)),
		"triggers", seq(mapping("type", "stage")),
		"properties", deployStageProperties(b),
		"jobs", seq(mapping(
			"name", DeployJobName,
			"type", "deployer",
			"target", mapping(
				"api_key", "${API_KEY}",
				"kubernetes_cluster", "${KUBE_CLUSTER_NAME}",
			),
			"script", block(deployScript),
		)),
	)

	doc := mapping("stages", seq(buildStage, deployStage))

	if b.err != nil {
		return nil, b.err
	}
	return encodeYAML(doc)
}
