// Package models defines the core domain models for the poupança ledger.
//
// Entities:
//   - User: login identity with a role (admin, group_manager, member)
//   - Group: a savings circle with its own currency and members
//   - Member: one person inside a group; deactivated, never deleted
//   - Meeting: a dated session of a group during which movements are recorded
//   - Transaction: a single financial movement tied to one member and meeting
//   - Balance: a running total scoped to the system, a group, or a member
//   - AuditEntry: append-only record of mutating actions
//
// Relationships use plain int64 identifiers rather than pointers to avoid
// circular references. JSON tags keep the Portuguese field names of the
// public API (nome, valor, multa, saldo, ...).
package models
