// Package services defines the error taxonomy shared by the conversion
// pipeline. Stage code wraps failures with a sentinel marker so the workflow
// manager and the user-facing surfaces can classify them without string
// matching.
package services
