// Package watch turns a drop directory into a conversion feed. Each
// subdirectory of the watch directory is treated as one frame sequence; once
// it stops changing for the settle interval, a job with the configured
// default parameters is enqueued for it.
package watch
