// Package cmd implements the CLI application to manage a tax-lot ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

// Commands lists all subcommands.
// A main package registers each of them, and Execute() the user-selected one.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&holdingCmd{},
	&lotsCmd{},
	&gainsCmd{},
	&fmtCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "lots.jsonl", "Path to the ledger file of open lots (JSONL format)")
var currency = flag.String("currency", "USD", "Display currency for quantities and amounts")

// decodeLedger loads the ledger from the app ledger file.
func decodeLedger() (*taxlot.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting from an empty ledger")
		return taxlot.NewLedger(*currency), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	ledger, err := taxlot.DecodeLedger(f, *currency)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", *ledgerFile, err)
	}
	return ledger, nil
}

// saveLedger rewrites the app ledger file with the ledger's open lots in
// canonical form.
func saveLedger(ledger *taxlot.Ledger) error {
	f, err := os.Create(*ledgerFile)
	if err != nil {
		return fmt.Errorf("could not create ledger file %q: %w", *ledgerFile, err)
	}
	if err := taxlot.EncodeLedger(f, ledger); err != nil {
		f.Close()
		return fmt.Errorf("could not write ledger file %q: %w", *ledgerFile, err)
	}
	return f.Close()
}

// printMarkdown renders a markdown report for the terminal. If the terminal
// renderer cannot be built the raw markdown is still usable output.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
