// Package services implements the core claim-processing pipeline:
// query expansion, multi-query retrieval, structured answer synthesis,
// knowledge-base building, and the claim service that ties them
// together. Services depend only on ports; adapters are injected.
package services
