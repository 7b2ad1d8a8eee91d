// Package setup verifies the host prerequisites for running builds.
//
// This package is essentially a collection of host-level checks, and is
// therefore the only package that is allowed to call a global logger.
package setup
