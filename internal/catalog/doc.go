// Package catalog defines the product record and the filter engine.
//
// # Overview
//
// A catalogue is a flat list of Record values loaded once from a static JSON
// document. Nothing in this package performs I/O; loading lives in the source
// package and presentation in the render package.
//
// # Records
//
// Every attribute of a Record is optional. The JSON document may omit any key
// or set it to null, and both cases decode to the empty string:
//
//	[
//	  {"code": "A1", "name": "Widget", "colour": "Red", "type": "PP", "pdf": "a1.pdf"},
//	  {"code": "B2", "name": "Gadget", "colour": "Blue", "type": "Hybrid", "pdf": null}
//	]
//
// # Filtering
//
// Filter combines two predicates with a logical AND:
//
//   - Text: the trimmed query, lower-cased, must be a substring of the
//     lower-cased Code, Name or Colour. An empty query always matches.
//   - Category: the record's Type must equal the category ignoring case.
//     The sentinel CategoryAll ("all") disables this predicate.
//
// Filter is pure. It is always evaluated against the full master collection,
// so repeated calls with the same arguments return the same result and
// successive filter changes never compound:
//
//	visible := catalog.Filter(master, "wid", catalog.CategoryAll)
//
// # Categories
//
// The set of valid categories is owned by whoever presents the selector.
// Categories derives a candidate list from the loaded records for callers
// that have no configured list.
package catalog
