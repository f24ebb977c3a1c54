// Package models defines the core domain models for splitr.
//
// # Models
//
//   - Receipt: a single shopping transaction with a name, date and derived total
//   - Item: a priced line entry owned by exactly one receipt
//   - User: a collaborator who shares the cost of items; links to items and
//     receipts are join rows in the store, with no identity of their own
//   - ParsedReceipt: the transient output of the receipt parser, before persistence
//
// # Conventions
//
// 1. **Per-unit prices**: Item.Price is the price of one unit; the line cost is
// Price × Quantity. Parsers normalize to this convention.
// 2. **Derived totals**: Receipt.TotalAmount is recomputed by the store after every
// item mutation and is never entered directly.
// 3. **No circular references**: relationships use ID strings, read models
// (ReceiptWithItems, ItemWithUsers, ...) embed the rows they join.
package models
