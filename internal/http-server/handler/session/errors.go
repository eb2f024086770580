package session

import "errors"

var ErrFileTooLarge = errors.New("file too large")
