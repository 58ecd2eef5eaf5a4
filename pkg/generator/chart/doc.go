// Package chart renders the Helm chart that kube_deploy.sh installs:
// Chart.yaml, values.yaml and the deployment, service and autoscaler
// manifests under templates/.
//
// Manifests are built from typed k8s.io/api objects, converted to
// unstructured content, stripped of server-populated fields and serialized
// with sigs.k8s.io/yaml. Only the image coordinates are Helm template
// expressions so the pipeline can set them at install time; everything
// else, namespace included, is a literal.
package chart
