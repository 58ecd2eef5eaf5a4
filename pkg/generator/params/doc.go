// Package params builds the named parameter set that document templates are
// instantiated from.
//
// Each parameter is either a literal, substituted into documents as-is, or a
// deferred reference: a mustache token such as "{{api-key}}" that is emitted
// verbatim and resolved later by the toolchain setup UI. Document builders
// request parameters by name and fail with a MISSING_PARAMETER error when a
// name has no binding.
package params
