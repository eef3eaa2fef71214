// Package writers provides implementations of the DocumentSink interface
// for various output formats. Each writer regenerates the whole output
// document from its buffered results on every write, keyed by chunk index,
// so re-running a write for an index overwrites rather than duplicates.
//
// The writer for a given output is selected by file extension via ForPath.
package writers
