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

// Package serializer reads and writes structured data as JSON, YAML or a
// flattened table.
//
// Reading is used for application options documents; writing is used for
// generation reports.
//
// Reading:
//
//	opts, err := serializer.FromFile[descriptor.Options]("app.json")
//
// A path of "-" reads standard input; its format defaults to JSON unless a
// format is given with FromReader.
//
// Writing:
//
//	w := serializer.NewWriter(serializer.FormatYAML, os.Stdout)
//	defer w.Close()
//	if err := w.Serialize(ctx, report); err != nil {
//	    return err
//	}
//
// Table output flattens nested structs, maps and slices into dotted keys,
// sorted for stable output. Table is write-only.
package serializer
