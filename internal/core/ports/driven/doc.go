// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RepairPipeline: Text-level markup repairs run before parsing
//   - MarkupParser: Strict parsing of repaired markup into an element tree
//   - BlockConverter: Element tree to Block tree conversion
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TemplateStore: Template persistence. Without it, imports are not saved.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, preprocessor or converter package
package driven
