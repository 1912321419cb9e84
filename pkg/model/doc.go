// Package model defines the capability and specification value objects
// shared across the probe control framework.
//
// The types here are pure data: electrical envelopes describing what a
// port provides or requires, probe capability descriptors derived from
// those envelopes plus fixed timing constants, and status snapshots.
// They carry no behavior beyond range queries and are immutable once
// constructed. Specification catalogs (pkg/catalog) author envelopes;
// drivers (pkg/driver, pkg/probes) own capability descriptors; the
// compatibility validator (pkg/compat) consumes both.
package model
