// Package playlist turns catalog channels into extended M3U text and writes it
// to disk.
//
// Build emits the fixed header block followed by one #EXTINF line and one play
// URL per accepted channel. Entries without an id or with an empty name are
// skipped with a warning; entries that cannot be decoded at all are skipped
// with an error. Neither aborts the batch.
//
// Write replaces the target file in one scoped open/write/close under an
// advisory lock. Failures are tagged with ErrIO.
package playlist
