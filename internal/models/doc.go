// Package models defines the core domain models for fintrack.
//
// # Models
//
//   - Transaction: a personal income or expense entry in the ledger
//   - Group: a set of members sharing expenses
//   - GroupExpense: an expense recorded against a group
//   - Goal: a savings or spending target with a deadline
//   - User: a registered account that can own goals
//
// # Conventions
//
// 1. Amounts are decimal.Decimal and never signed; the sign of a contribution to a
//    balance is derived from the transaction type.
// 2. Dates entered by users are stored verbatim as strings; parsing happens where a
//    calendar date is actually needed.
// 3. Relationships use ID strings instead of pointers.
// 4. CreatedAt is a Unix millisecond timestamp that records insertion order.
package models
