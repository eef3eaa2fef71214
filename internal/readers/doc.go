// Package readers provides implementations of the DocumentSource interface
// for various document formats. Each reader knows how to extract text
// content from a specific container.
//
// The reader for a given input is selected by file extension via ForPath.
package readers
