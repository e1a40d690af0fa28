package main

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse reports a provider call that completed but produced no
// usable text. Wrapped with the provider name by each client.
var ErrEmptyResponse = errors.New("model returned empty response")

// ConfigError is a fatal pre-flight configuration problem. It aborts startup
// and is never produced per-item.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// PayloadTooLargeError rejects an input before any model call is made.
type PayloadTooLargeError struct {
	Size int
	Max  int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("input too large (%d bytes), max allowed is %d bytes", e.Size, e.Max)
}

// ProviderCallError wraps a transport or API failure from a model provider.
// There is no retry at this layer; the error propagates to the processor.
type ProviderCallError struct {
	Provider Provider
	Err      error
}

func (e *ProviderCallError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Provider, e.Err)
}

func (e *ProviderCallError) Unwrap() error { return e.Err }

// ArchiveError reports a failure while moving an item into .processed/ or
// .failed/. It is logged by the caller and never crashes the dispatcher.
type ArchiveError struct {
	Filename string
	Err      error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archiving %s: %v", e.Filename, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }
