// Package narration turns parsed dispatch documents into narrator invocations.
// It owns the narration script assembly rule, the voice-family parameter
// table, and the adapter around the external narrator binary.
package narration
