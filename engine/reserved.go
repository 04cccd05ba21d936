package engine

// Merge is reserved for a future command that folds one item's stored
// signature into another's and drops the source, per spec.md §1's
// "merging... left as extension points" and §7's NotImplemented taxonomy
// entry. It is wired into the dispatcher's command table today so adding
// the real implementation later is a one-function change.
func (e *Engine) Merge(cfg Configuration, argv []string) error {
	return ErrNotImplemented
}

// Delete is reserved for a future command that removes an item's
// Frequency Store entries for a feature index. Candidate Index membership
// for that item would still only disappear by TTL expiration — the
// reference never retroactively cleans inverted-index entries on delete,
// and this stub preserves that as the documented eventual behavior rather
// than silently promising stronger semantics.
func (e *Engine) Delete(cfg Configuration, argv []string) error {
	return ErrNotImplemented
}
