// CycleSense: menstrual-cycle profiling with narrative reports.
//
// Assigns a cycle profile from three recorded cycles using two pre-trained
// cluster models and renders lay, clinician and technical reports, either
// from the command line or as an MCP server.
//
// Usage:
//
//	cyclesense artifacts import --sample   # Load the sample models
//	cyclesense report ...                  # Print a report
//	cyclesense serve                       # Start MCP server (stdio transport)
package main

import "github.com/HendryAvila/cyclesense/internal/cli"

func main() {
	cli.Execute()
}
