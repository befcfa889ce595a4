// Package memory implements per-user long-term memory consolidation.
//
// A consolidation cycle ages the stored facts (Decay), folds freshly
// extracted candidates into them (Merge) and keeps the strongest few (Rank).
// ConsolidateMemory is the pure form of the cycle; Consolidator runs it
// against a core.Store with per-user serialization. RenderMemoryPrompt turns
// the retained facts into a block for a downstream system prompt.
package memory
