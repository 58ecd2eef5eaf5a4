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

// Package result describes the outcome of a generation run.
//
// Each generated file is reported as a Result with its relative path, size,
// SHA256 digest and what happened to it on disk:
//
//	written    the file was created or replaced
//	unchanged  an identical file already existed and was left alone
//	planned    dry run; nothing was written
//
// Output aggregates the results of one run and is what the CLI serializes
// as the generation report:
//
//	out := result.New(runID, "/work/acme")
//	out.Add(&result.Result{Artifact: "toolchain", Path: ".bluemix/toolchain.yml", Size: 812})
//	fmt.Println(out.Summary())
package result
