package catalog

import "errors"

// Fatal error classes. Each aborts the run; callers match them with errors.Is.
var (
	ErrParse      = errors.New("parse source")
	ErrSchema     = errors.New("create schema")
	ErrDictionary = errors.New("import dictionary")
	ErrCollection = errors.New("import collection")
)
