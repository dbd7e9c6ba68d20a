package record

// BoundingHierarchy is the narrow notification contract an optional
// bounding-box hierarchy accelerator implements. Building or replaying
// such a hierarchy is out of scope here; the recorder only ever calls
// this one method.
type BoundingHierarchy interface {
	// RewindInserts tells the hierarchy to discard any insert it recorded
	// past offset, called after collapse_save_clip_restore rewinds the
	// stream.
	RewindInserts(offset uint32)
}

// StateTree is the optional replay-time accelerator notified when a
// save-layer fold collapses a save, so it can prune that branch from its
// traversal.
type StateTree interface {
	// SaveCollapsed tells the state tree that the save at saveOffset no
	// longer has a corresponding restore in the stream.
	SaveCollapsed(saveOffset uint32)
}
