// Package darkcrawl provides a pipeline for discovering the reachable pages
// of a target site and extracting structured deceptive-UI-pattern findings
// from each page using a vision-capable model. It combines a breadth-first,
// safety-bounded crawl of a single origin with a per-page analysis stage
// that validates model output and crops visual evidence.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, gemini/, sqlite/).
package darkcrawl
