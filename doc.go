// Package taxlot tracks purchase lots of financial assets and computes the
// realized gain or loss of sales using First-In-First-Out (FIFO) lot
// matching. It is designed to be local-first and auditable: the whole state
// of a ledger is a human-readable JSONL file of open lots.
//
// The core functionalities include:
//   - Lot Ledger: an in-memory collection of open purchase lots per asset
//     symbol, with purchase, sale, quantity, and cost basis operations.
//   - Sale Matching: consuming open lots oldest settlement date first,
//     splitting lots as needed, and accumulating the realized gain or loss
//     across every consumed fragment.
//   - Unrealized Gains: valuing open positions against supplied market
//     prices, read from flags or from a quotes JSON document.
//   - Data Persistence: encoding and decoding ledgers to and from a
//     human-readable, version-controllable JSONL format.
//
// All quantities and amounts are exact decimals, so cost basis sums never
// drift across many partial lot consumptions.
//
// This package serves as the foundational logic for the `tlt` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package taxlot
