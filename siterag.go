// Package siterag provides a web-page indexing and retrieval pipeline.
// It crawls a bounded set of same-origin pages, extracts their main
// content, splits it into overlapping chunks, embeds the chunks as
// vectors, and persists them in a content-addressed vector store that
// answers similarity-ranked queries with source attribution.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// goquery/, openai/).
package siterag
