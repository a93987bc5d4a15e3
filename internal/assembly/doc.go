// Package assembly turns a directory of numbered PNG stills into the frame
// sequence an encoder consumes.
//
// It owns the conversion parameter model (format, fps, quality, lossless,
// optional scaling) and its validation rules, discovers frames in
// numeric-aware filename order, decodes them in parallel, and normalizes
// every frame to NRGBA at a single canvas size so encoders never see mixed
// geometry.
package assembly
