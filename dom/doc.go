// Package dom builds HTML-like node trees from tagdom templates. Build is
// the tag-function entry point: it encodes interpolations as collision-free
// placeholders, streams the markup through an incremental tokenizer, and
// reattaches the queued values to start-tag, text, and end-tag events while
// maintaining a stack of the currently open nodes.
package dom
