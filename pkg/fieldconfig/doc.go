// Package fieldconfig declares autocomplete field types in YAML or JSON files
// and registers them against caller-supplied item sources.
//
// A file maps field type names to definitions:
//
//	field_types:
//	  person:
//	    source: people
//	    overridable: [multiselect, required]
//	    config:
//	      placeholder: Search people
//	      minimum_search_length: 2
//	      max_results: 20
//
// Settings missing from config keep the values of autocomplete.DefaultConfig.
package fieldconfig
