// Package core defines the shared data model of the CarMesh orchestration
// engine: queries, agent roles and results, execution plans, trace events and
// the response envelope, plus the interfaces (Agent, KnowledgeStore,
// ListingStore) that the planner, engine and agent packages build on.
//
// Everything in this package is either immutable after construction
// (Query, TraceEvent, Envelope) or exclusively owned by one request's
// coordinator (RunContext). Nothing here is shared across requests.
package core
