// Package event defines the common schema that every source parser produces
// and the shared field normalization that goes with it.
//
// Each event carries a deterministic content-derived identifier generated
// from its title, normalized date, and source, enabling stable identity
// across repeated scrape runs. Date normalization is fuzzy: it tolerates
// ordinal suffixes, weekday prefixes, and surrounding noise, and degrades to
// "no normalized date" rather than failing the record.
package event
