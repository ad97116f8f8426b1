// Package sources contains the per-site event parsers.
//
// Every parser satisfies the same Source contract but encodes its own
// site-specific knowledge: three sites are parsed as selector cards with
// prioritized fallback chains per field, one is a flat calendar of headings
// and links decomposed with regex heuristics, and two are JSON APIs queried
// directly. All field extraction is best-effort: a field that cannot be
// resolved is left absent, and only a missing title drops a record.
package sources
