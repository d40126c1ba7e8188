// Package apperrors provides unified error handling for the service.
// It implements structured error types with error codes and HTTP status
// mapping; every operation classifies its foreseeable failures here and
// downgrades anything else to a generic internal error.
package apperrors
