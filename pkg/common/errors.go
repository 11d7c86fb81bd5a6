package common

import "fmt"

// ConfigError reports a configuration problem (missing path, bad flag value).
// These surface before any image I/O happens.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Configuration Error: %s", e.Message)
}

// ParseError reports a malformed input value (log line, date, coordinates).
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse Error: %s", e.Message)
}

// TagWriteError reports a failure while copying or embedding tags into an image.
type TagWriteError struct {
	Message string
}

func (e *TagWriteError) Error() string {
	return fmt.Sprintf("Tag Write Error: %s", e.Message)
}

// ArchiveError reports a failure while archiving a tagged copy to object storage.
type ArchiveError struct {
	Message string
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("Archive Error: %s", e.Message)
}

func NewConfigError(format string, v ...interface{}) error {
	return &ConfigError{Message: fmt.Sprintf(format, v...)}
}

func NewParseError(format string, v ...interface{}) error {
	return &ParseError{Message: fmt.Sprintf(format, v...)}
}

func NewTagWriteError(format string, v ...interface{}) error {
	return &TagWriteError{Message: fmt.Sprintf(format, v...)}
}

func NewArchiveError(format string, v ...interface{}) error {
	return &ArchiveError{Message: fmt.Sprintf(format, v...)}
}
