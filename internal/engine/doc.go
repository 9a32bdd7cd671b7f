// Package engine is the facade over the list editing core. It combines
// the block tree, structural mutations, numbering, caret tracking,
// undo/redo, and the renumber scheduler into a unified, thread-safe
// API.
//
// Every mutation runs as a transaction: the engine snapshots the
// document, applies the operation, repairs any structural damage, and
// rolls back to the snapshot if the operation fails or panics. A
// successful mutation records an undo entry, restores the caret through
// the position tracker, publishes a change event, and schedules a
// debounced renumber pass.
package engine
