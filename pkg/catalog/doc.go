// Package catalog holds the read-only specification tables for signal
// generation platforms and probes.
//
// The tables are external collaborators as far as the control core is
// concerned: the core only issues accessor queries (output by ID, port
// by ID) and never mutates them. A built-in default catalog covers the
// probes shipped in pkg/probes and the reference platform; additional
// or overriding specifications load from YAML files, one document per
// file, so lab-specific hardware can be described without code changes.
package catalog
