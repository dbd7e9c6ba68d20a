package canvas

// SaveFlags is a bitmask of options attached to a save/save_layer command,
// mirroring SkCanvas::SaveFlags. The recorder only inspects FlagMatrixClip
// itself (collapse_save_clip_restore requires it); the rest are carried
// through opaquely for the host canvas's benefit.
type SaveFlags uint32

const (
	FlagHasAlphaLayer SaveFlags = 1 << iota
	FlagFullColorLayer
	FlagClipToLayer
	// FlagMatrixClip marks an ordinary save issued purely to checkpoint
	// matrix/clip state (no other side effects) — the only kind of save
	// the collapse optimizer is allowed to remove. BeginRecording's
	// top-level save always carries this flag.
	FlagMatrixClip
)
