// Package convert runs one catalog-to-playlist conversion.
//
// Run sequences the fetcher, the playlist builder, and the writer exactly
// once. A failed fetch, an empty catalog, or a catalog with no usable channels
// ends the run with an error and leaves any existing playlist untouched. A
// failed write is logged and reported in Result.WriteErr but does not turn the
// run into a failure.
package convert
