// Package preflight runs startup checks: directory access, free disk space,
// and external binary availability. The status command and the watch worker
// both use it so the requirements list lives in one place.
package preflight
