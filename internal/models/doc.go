// Package models defines the core domain models for Roamly.
//
// # Models
//
//   - Trip: the top-level grouping entity owning members, expenses, choices,
//     kit items and contacts. Every trip has a base currency that all
//     expense amounts are normalized into.
//   - Member: a participant in a trip with an RSVP status. Members may or
//     may not be linked to a registered User.
//   - Expense: money spent on behalf of the group, with per-member
//     ShareAssignments describing who owes what portion.
//   - Settlement: a persisted acknowledgment of a suggested transfer,
//     tracking partial Payments against it.
//   - Choice: a group poll (menu pick, activity vote) with options and
//     one vote per member.
//   - KitItem: an entry on the trip packing list.
//   - Contact: a shared contact card for the trip.
//   - User: a registered account used for authentication.
//
// # Design Principles
//
//  1. All monetary amounts are int64 minor units (cents). Conversion to and
//     from display strings happens at the edges, never in domain logic.
//  2. Relationships use ID strings instead of pointers to avoid circular
//     references.
//  3. Derived values (balances, suggested transfers) are never stored on
//     these models; they are recomputed on demand by the calculator.
package models
