package dom

import (
	tagerrors "github.com/conneroisu/tagdom/internal/errors"
)

// Sentinel errors for use with errors.Is. Errors returned by Build carry
// additional context but match these on category and code.
var (
	// ErrMismatchedTag: a resolved end-tag name does not equal the tag of
	// the node being closed.
	ErrMismatchedTag error = tagerrors.NewStructure(
		tagerrors.CodeMismatchedTag, "end tag does not match open node")

	// ErrUnexpectedEndTag: an end tag arrived with no open node to close.
	ErrUnexpectedEndTag error = tagerrors.NewStructure(
		tagerrors.CodeUnexpectedEnd, "end tag with no matching start tag")

	// ErrEmptyResult: the template resolved to no top-level content.
	ErrEmptyResult error = tagerrors.NewStructure(
		tagerrors.CodeEmptyResult, "template produced no content")

	// ErrFragmentAttrs: an untagged fragment wrapper carries attributes.
	ErrFragmentAttrs error = tagerrors.NewStructure(
		tagerrors.CodeFragmentAttrs, "untagged node cannot have attributes")

	// ErrAttrNameInterpolation: a placeholder occurred inside an attribute
	// name. Attribute names may not be interpolated, in whole or in part;
	// only whole values and the expansion form are allowed.
	ErrAttrNameInterpolation error = tagerrors.NewSyntax(
		tagerrors.CodeAttrNameInterp, "cannot interpolate attribute names")

	// ErrQueueExhausted: an event claimed more values than were queued.
	ErrQueueExhausted error = tagerrors.NewAccounting(
		tagerrors.CodeQueueExhausted, "no queued value for placeholder")

	// ErrQueueResidue: values remained queued after an event that should
	// have drained them.
	ErrQueueResidue error = tagerrors.NewAccounting(
		tagerrors.CodeQueueResidue, "queued values left unconsumed")

	// ErrTagIdentity: a tag position resolved to a value that is neither a
	// string nor a Component.
	ErrTagIdentity error = tagerrors.NewValidation(
		tagerrors.CodeTagIdentity, "tag position requires a string or component")

	// ErrAttrExpansion: the attribute expansion form dequeued a value that
	// is not a string-keyed map.
	ErrAttrExpansion error = tagerrors.NewValidation(
		tagerrors.CodeAttrExpansion, "attribute expansion requires a string-keyed map")

	// ErrPlaceholderInLiteral: the optional placeholder guard found literal
	// text that decodes to the reserved placeholder token.
	ErrPlaceholderInLiteral error = tagerrors.NewSyntax(
		tagerrors.CodePlaceholderLit, "literal text contains the reserved placeholder")
)
