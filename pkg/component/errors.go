package component

import "errors"

// ErrAlreadyRooted is returned by SetRoot when the component already has a
// parent. The call changes nothing.
var ErrAlreadyRooted = errors.New("euonymus: component already rooted")

// ErrTagMismatch is returned by Update when the descriptor names a
// different tag than the component was built with.
var ErrTagMismatch = errors.New("euonymus: descriptor tag does not match component")

// ErrUnsupportedContent is returned when a descriptor's Content has a type
// the engine does not know.
var ErrUnsupportedContent = errors.New("euonymus: unsupported component content")
