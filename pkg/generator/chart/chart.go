package chart

import (
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
	appsv1 "k8s.io/api/apps/v1"
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"
	sigsyaml "sigs.k8s.io/yaml"
)

const (
	// APIVersion is the chart API version understood by Helm 2 and 3.
	APIVersion = "v1"

	imageRepositoryExpr = "{{ .Values.image.repository }}:{{ .Values.image.tag }}"
	imagePullPolicyExpr = "{{ .Values.image.pullPolicy }}"
	imagePullSecretExpr = "{{ .Values.image.pullSecret }}"
)

// Values carries the literal inputs of the chart.
type Values struct {
	// Name is the chart and release name.
	Name string
	// AppName is the human-readable application name.
	AppName string
	// Namespace is written into every manifest.
	Namespace string
	// Image is the default image repository.
	Image string
	// Port is the container and service port.
	Port int32
	// ChartVersion is the chart version.
	ChartVersion string
	// Replicas is the initial replica count.
	Replicas int32
	// MinReplicas and MaxReplicas bound the autoscaler.
	MinReplicas int32
	MaxReplicas int32
	// TargetCPU is the autoscaler CPU utilization target in percent.
	TargetCPU int32
	// Labels are added to every manifest.
	Labels map[string]string
}

// Metadata is the content of Chart.yaml.
type Metadata struct {
	APIVersion  string `json:"apiVersion" yaml:"apiVersion"`
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	AppVersion  string `json:"appVersion" yaml:"appVersion"`
	Description string `json:"description" yaml:"description"`
}

// ImageValues is the image section of values.yaml.
type ImageValues struct {
	Repository string `json:"repository" yaml:"repository"`
	Tag        string `json:"tag" yaml:"tag"`
	PullPolicy string `json:"pullPolicy" yaml:"pullPolicy"`
	PullSecret string `json:"pullSecret" yaml:"pullSecret"`
}

// ValuesFile is the content of values.yaml.
type ValuesFile struct {
	Image ImageValues `json:"image" yaml:"image"`
}

// ChartYAML renders Chart.yaml.
func ChartYAML(v Values) ([]byte, error) {
	return marshalYAML(Metadata{
		APIVersion:  APIVersion,
		Name:        v.Name,
		Version:     v.ChartVersion,
		AppVersion:  v.ChartVersion,
		Description: fmt.Sprintf("A Helm chart for %s", v.AppName),
	})
}

// ValuesYAML renders values.yaml.
func ValuesYAML(v Values) ([]byte, error) {
	return marshalYAML(ValuesFile{
		Image: ImageValues{
			Repository: v.Image,
			Tag:        "latest",
			PullPolicy: string(corev1.PullAlways),
			PullSecret: "default",
		},
	})
}

// DeploymentYAML renders templates/deployment.yaml.
func DeploymentYAML(v Values) ([]byte, error) {
	selector := map[string]string{"app": v.Name}

	d := &appsv1.Deployment{
		TypeMeta:   metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: objectMeta(v),
		Spec: appsv1.DeploymentSpec{
			Replicas:             ptr.To(v.Replicas),
			RevisionHistoryLimit: ptr.To[int32](1),
			Selector:             &metav1.LabelSelector{MatchLabels: selector},
			Strategy: appsv1.DeploymentStrategy{
				Type: appsv1.RollingUpdateDeploymentStrategyType,
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels(v)},
				Spec: corev1.PodSpec{
					ImagePullSecrets: []corev1.LocalObjectReference{{Name: imagePullSecretExpr}},
					Containers: []corev1.Container{{
						Name:            v.Name,
						Image:           imageRepositoryExpr,
						ImagePullPolicy: corev1.PullPolicy(imagePullPolicyExpr),
						Ports: []corev1.ContainerPort{{
							Name:          "http",
							ContainerPort: v.Port,
						}},
						Env: []corev1.EnvVar{{Name: "PORT", Value: fmt.Sprintf("%d", v.Port)}},
						Resources: corev1.ResourceRequirements{
							Requests: corev1.ResourceList{
								corev1.ResourceCPU:    resource.MustParse("200m"),
								corev1.ResourceMemory: resource.MustParse("300Mi"),
							},
						},
						ReadinessProbe: &corev1.Probe{
							ProbeHandler: corev1.ProbeHandler{
								TCPSocket: &corev1.TCPSocketAction{Port: intstr.FromInt32(v.Port)},
							},
							InitialDelaySeconds: 10,
							PeriodSeconds:       5,
						},
					}},
				},
			},
		},
	}
	return manifestYAML(d)
}

// ServiceYAML renders templates/service.yaml.
func ServiceYAML(v Values) ([]byte, error) {
	s := &corev1.Service{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: objectMeta(v),
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeNodePort,
			Selector: map[string]string{"app": v.Name},
			Ports: []corev1.ServicePort{{
				Name:       "http",
				Port:       v.Port,
				TargetPort: intstr.FromInt32(v.Port),
			}},
		},
	}
	return manifestYAML(s)
}

// HPAYAML renders templates/hpa.yaml.
func HPAYAML(v Values) ([]byte, error) {
	h := &autoscalingv2.HorizontalPodAutoscaler{
		TypeMeta:   metav1.TypeMeta{APIVersion: "autoscaling/v2", Kind: "HorizontalPodAutoscaler"},
		ObjectMeta: objectMeta(v),
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{
				APIVersion: "apps/v1",
				Kind:       "Deployment",
				Name:       v.Name,
			},
			MinReplicas: ptr.To(v.MinReplicas),
			MaxReplicas: v.MaxReplicas,
			Metrics: []autoscalingv2.MetricSpec{{
				Type: autoscalingv2.ResourceMetricSourceType,
				Resource: &autoscalingv2.ResourceMetricSource{
					Name: corev1.ResourceCPU,
					Target: autoscalingv2.MetricTarget{
						Type:               autoscalingv2.UtilizationMetricType,
						AverageUtilization: ptr.To(v.TargetCPU),
					},
				},
			}},
		},
	}
	return manifestYAML(h)
}

func labels(v Values) map[string]string {
	out := maps.Clone(v.Labels)
	if out == nil {
		out = make(map[string]string, 2)
	}
	out["app"] = v.Name
	out["chart"] = v.Name + "-" + v.ChartVersion
	return out
}

func objectMeta(v Values) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:      v.Name,
		Namespace: v.Namespace,
		Labels:    labels(v),
	}
}

// manifestYAML converts obj to unstructured content, drops fields the API
// server owns and serializes the rest.
func manifestYAML(obj runtime.Object) ([]byte, error) {
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %T: %w", obj, err)
	}

	unstructured.RemoveNestedField(content, "status")
	unstructured.RemoveNestedField(content, "metadata", "creationTimestamp")
	unstructured.RemoveNestedField(content, "spec", "template", "metadata", "creationTimestamp")

	out, err := sigsyaml.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", obj, err)
	}
	return out, nil
}

func marshalYAML(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	return out, nil
}
