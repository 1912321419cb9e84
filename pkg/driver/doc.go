// Package driver defines the vendor-agnostic probe driver abstraction
// and the registry that makes concrete probes selectable by name.
//
// Every probe implementation, whatever its physics (EMFI, laser, RF,
// voltage glitch), satisfies the same Driver capability surface:
// initialize, configure, arm, trigger, disarm, query status, shut down.
// Base provides the shared implementation over a registers.Interface;
// concrete probes (pkg/probes) supply their capability tables and wrap
// Base rather than reimplementing the interlock sequencing.
//
// # Lifecycle
//
// A Driver is constructed, initialized once, driven through zero or
// more arm/trigger/disarm cycles, and shut down. Using a driver after
// Shutdown fails with ErrShutdown; initializing twice fails with
// ErrAlreadyInitialized.
//
// # Concurrency
//
// One logical owner drives one physical probe connection. Base enforces
// the single-writer discipline: state-changing calls are serialized for
// the lifetime of an arm/trigger/disarm cycle, and status queries are
// serialized against in-flight state changes while remaining safe to
// issue concurrently with each other.
//
// # Autonomous transitions
//
// Trigger returns as soon as the trigger register write completes. The
// PULSE_ACTIVE to COOLDOWN and COOLDOWN to IDLE transitions happen on
// the hardware's own clock; software observes them only via Status or
// the WaitForIdle helper, never assumes them synchronous with Trigger.
package driver
