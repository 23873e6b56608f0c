// Package tagdom models template literals as an ordered sequence of literal
// text segments and eagerly evaluated interpolations, ready to be handed to a
// processing function instead of being concatenated into a string.
//
// The package owns the data model only: [Template], the two [Part] variants
// [Literal] and [Interpolation], and the conversion/format machinery applied
// to interpolated values. The structural HTML builder that consumes templates
// lives in the dom subpackage.
package tagdom
