// Package build runs one documentation build: render the page template,
// write the page, optionally write the highlight stylesheet, then bundle the
// collected example scripts with the external bundler.
//
// Stages run in order and the first failure aborts the build. Nothing is
// retried and a failed bundle leaves whatever the bundler wrote in place.
package build
