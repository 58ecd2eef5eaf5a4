// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package templates

import (
	_ "embed"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/descriptor"
)

//go:embed scripts/container_build.sh
var containerBuildScript string

//go:embed scripts/container_build_java.sh
var containerBuildJavaScript string

//go:embed scripts/kube_deploy.sh
var kubeDeployScript string

// ScriptFunc looks up a script body by language bucket.
type ScriptFunc func(bucket descriptor.Bucket) (string, bool)

// NewScriptGetter returns a ScriptFunc over bodies keyed by bucket. When
// the bucket has no entry the default bucket's body is used.
func NewScriptGetter(bodies map[descriptor.Bucket]string) ScriptFunc {
	return func(bucket descriptor.Bucket) (string, bool) {
		if body, ok := bodies[bucket]; ok {
			return body, true
		}
		body, ok := bodies[descriptor.BucketDefault]
		return body, ok
	}
}

var buildScripts = NewScriptGetter(map[descriptor.Bucket]string{
	descriptor.BucketDefault: containerBuildScript,
	descriptor.BucketJava:    containerBuildJavaScript,
})

var deployScripts = NewScriptGetter(map[descriptor.Bucket]string{
	descriptor.BucketDefault: kubeDeployScript,
})
