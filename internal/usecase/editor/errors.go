package editor

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrTooManySessions  = errors.New("too many sessions")
	ErrIndexOutOfRange  = errors.New("text index out of range")
	ErrNotEditable      = errors.New("text is not editable")
	ErrColorLocked      = errors.New("text color is not editable")
	ErrInvalidEdit      = errors.New("invalid edit")
	ErrOverlayDisabled  = errors.New("overlay colors are disabled")
	ErrUnknownTint      = errors.New("unknown overlay color")
	ErrInvalidElementID = errors.New("invalid element handle")
)
