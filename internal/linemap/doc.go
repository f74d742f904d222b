// Package linemap computes a line-to-line correspondence between an old and a
// new revision of a text file.
//
// Matching runs in stages:
//
//  1. Lines are normalized (lower-cased, whitespace collapsed) and aligned with
//     difflib-style opcodes. Equal runs become anchors.
//  2. Each replace span is scored pairwise: token cosine plus character-gram
//     cosine for content, a windowed token profile for context, and an
//     optional bonus for pairs at the same offset within the span.
//  3. Spans up to Options.MaxAssignmentSize are solved exactly as a
//     maximum-weight assignment. Larger spans fall back to a greedy pass over
//     simhash-shortlisted candidates.
//  4. Everything left over is reported as a deletion or an insertion.
//
// The result satisfies: every old line and every new line appears exactly
// once, and the matched pairs form a partial one-to-one function. MapLines is
// pure and deterministic for fixed inputs and Options, regardless of
// Options.Workers.
package linemap
