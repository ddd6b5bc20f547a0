// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Loader: Extracts text from a raw document payload
//   - EmbeddingService: Generates vector embeddings
//   - VectorIndex: Stores vectors and runs similarity search
//   - BundleStore: Persists a knowledge-base snapshot
//
// # Optional Interfaces
//
//   - LLMService: When nil, query expansion degrades to the original
//     query and answer synthesis is unavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or loader package
package driven
