package model

import "errors"

var ErrNoRecord = errors.New("no record")
var ErrEmptyMessage = errors.New("no message provided")
var ErrRangeTooLarge = errors.New("date range too large")
