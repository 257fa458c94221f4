// Package models defines the core domain records for Divvly.
//
// # Records
//
//   - Group / Member: a named set of members sharing one settlement token
//   - Bill: a recorded expense paid by one member and split across a subset
//   - Debt: a non-negative pairwise balance between two members of a group
//   - Settlement: a payment that reduced an existing debt (audit record)
//   - User: a registered account; its ID doubles as the ledger address
//
// # Design principles
//
//  1. **Integer money**: all amounts are int64 values in the group token's
//     smallest unit. No floating point anywhere in the ledger.
//  2. **Stable identity**: group ids are sequential integers, members keep
//     the index they were assigned at creation, bills are addressed by
//     their position in the group's append-only sequence.
//  3. **Avoid circular references**: records reference each other by id,
//     never by pointer.
//
// Derived quantities (per-member totals, net balances) are not stored on
// any record; they are computed from the debt table.
package models
