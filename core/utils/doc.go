// Package utils holds loose-typed value helpers used at the request boundary,
// where the same field can arrive as a JSON number, a string or a form value.
package utils
