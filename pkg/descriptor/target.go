package descriptor

import (
	"strings"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/errors"
)

// Target identifies the deployment platform artifacts are generated for.
type Target string

// TargetKube deploys to a Kubernetes cluster through a delivery pipeline.
const TargetKube Target = "Kube"

var targets = []Target{TargetKube}

// ParseTarget resolves a case-insensitive target name. An empty value
// selects Kube, the only supported target.
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TargetKube, nil
	}
	for _, t := range targets {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", errors.UnsupportedTarget(s)
}
