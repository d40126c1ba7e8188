// Package validation validates request structs using go-playground/validator
// struct tags. Field names in error messages come from json tags, and the
// reported message is the first violated constraint in declaration order.
package validation
