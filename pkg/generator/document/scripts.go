package document

import (
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/templates"
)

func scriptBuilder(artifactID string) Builder {
	return func(a *Assembler) ([]byte, error) {
		body, err := a.scripts.Script(artifactID, a.desc.Language)
		if err != nil {
			return nil, err
		}
		return []byte(body), nil
	}
}

var (
	buildContainerScript  = scriptBuilder(templates.ArtifactBuildScript)
	buildKubeDeployScript = scriptBuilder(templates.ArtifactDeployScript)
)
