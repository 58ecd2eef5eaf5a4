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

// Package config holds the immutable settings of a generation run.
//
// A Config is built once with functional options and then only read:
//
//	cfg := config.NewConfig(
//	    config.WithNamespace("acme"),
//	    config.WithIncludeChecksums(true),
//	)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// Defaults match the placeholders the toolchain expects to be edited at
// setup time: cluster my_kube_cluster, namespace my_kube_namespace.
package config
