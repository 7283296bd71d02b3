// Package timezones provides deterministic IANA timezone data exposed as an
// autocomplete item source.
//
// The backing data is loaded from the embedded IANA timezone list under
// data/iana_timezones.txt. Keys are zone identifiers ("America/New_York") and
// labels replace underscores with spaces ("America/New York").
package timezones
