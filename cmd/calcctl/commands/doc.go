// Package commands implements the calcctl command line: one subcommand per
// remote calculation, each validating its flags exactly like HTTP input and
// printing either a short summary or the raw result JSON.
package commands
