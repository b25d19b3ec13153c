// Package analytics records link clicks and aggregates them into plain
// summaries. A Store persists individual clicks; Summarize and WriteCSV
// derive reports from rows the caller fetched. There is no pipeline behind
// it, and entitlement gating stays with the HTTP layer.
package analytics
