// Package tui implements the interactive conversion form. It collects the
// input directory, output file, and encoding parameters, previews how many
// frames the directory holds, and runs the conversion in the background while
// showing transient status toasts.
package tui
