// Package errors provides structured error types for better observability
// and programmatic error handling across the generator.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInternal,
//	    "failed to write artifact",
//	    err,
//	    map[string]any{
//	        "path": ".bluemix/pipeline.yml",
//	    },
//	)
//
// Domain failures have dedicated constructors (UnsupportedLanguage,
// UnsupportedTarget, MissingParameter, UnknownArtifact) so callers can
// branch with IsCode instead of matching on messages.
package errors
