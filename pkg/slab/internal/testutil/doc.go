// Package testutil drives a real [slab.Slab] and the reference model with the
// same operation stream and reports any divergence. It is shared by the
// seeded property tests and the fuzz targets.
package testutil
