// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - DocumentSource: Reads and extracts text from an input document
//   - DocumentSink: Persists annotated results incrementally
//   - LLMService: Generates annotations for chunk text
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - PromptStore: System instruction templates. Without it, the built-in
//     annotation instruction is used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, reader, or writer package
package driven
