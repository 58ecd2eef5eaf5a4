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


package defaults

import "time"

// CLI timeouts for command-line operations.
const (
	// CLIGenerateTimeout is the default deadline of the generate command,
	// including an optional registry push.
	CLIGenerateTimeout = 5 * time.Minute

	// CLIVerifyTimeout is the default deadline of the verify command.
	CLIVerifyTimeout = 1 * time.Minute
)

// OCI timeouts for publishing generated projects.
const (
	// OCIPackageTimeout bounds packing a project into a local OCI layout.
	OCIPackageTimeout = 1 * time.Minute

	// OCIPushTimeout bounds copying an artifact to a remote registry.
	OCIPushTimeout = 3 * time.Minute
)

// HTTP client timeouts for registry requests.
const (
	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 30 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)
