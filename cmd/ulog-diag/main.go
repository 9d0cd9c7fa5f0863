// Command ulog-diag is a tool for inspecting diagnostics log files
// written by the scope-tracking diagnostics channel (pkg/diag).
//
// Usage:
//
//	ulog-diag <command> [flags] <diagnostics.log>
//
// Commands:
//
//	view     View records with depth indentation and crash markers
//	stats    Show per-run statistics as a table
//	export   Export records to JSONL, CSV or CBOR
//	runs     List process runs and their crash status
//
// Examples:
//
//	# View only start records at depth 2 or deeper
//	ulog-diag view --phase start --min-depth 2 diagnostics.log
//
//	# Per-run statistics, including dangling scope depth
//	ulog-diag stats diagnostics.log
//
//	# Export to machine-readable CBOR
//	ulog-diag export --format cbor -o records.cbor diagnostics.log
package main

import "github.com/ulog-project/ulog-go/cmd/ulog-diag/commands"

func main() {
	commands.Execute()
}
