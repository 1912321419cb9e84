// Package session is the composition root of the probe control
// framework.
//
// A session is opened from configuration: a probe identifier, a target
// platform identifier and a chosen output port. Open resolves the
// driver through the registry, validates the probe's capability
// envelope against the platform output's specification for the selected
// signal mode, and only on a SAFE verdict initializes the driver. An
// UNSAFE pairing is rejected before any register write that could reach
// hardware.
//
// The session owns one driver for its lifetime (single logical owner
// per physical probe connection) and records operational history to an
// optional persistence store.
package session
