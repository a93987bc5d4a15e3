// Package workflow drives conversion jobs from pending to completed.
//
// A single worker goroutine polls the queue, claims the oldest pending job,
// and runs the conversion stage: scan the input directory, decode and
// normalize the frames, then hand them to the format's encoder. Jobs left in
// converting by a crash are returned to pending at startup.
package workflow
