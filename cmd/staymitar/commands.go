package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/kingrea/staymitar/internal/config"
	"github.com/kingrea/staymitar/internal/frontdesk"
	"github.com/kingrea/staymitar/internal/logbook"
	"github.com/kingrea/staymitar/internal/receipt"
	"github.com/kingrea/staymitar/internal/store"
	"github.com/kingrea/staymitar/internal/tui"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `Usage:
  staymitar                 open the front desk TUI
  staymitar init            create .staymitar/ with the default config
  staymitar checkin -name N -address A -mobile M -days D -room-class C -payment P [-receipt]
  staymitar checkout ROOM   check the guest in ROOM out
  staymitar info ROOM       show the guest in ROOM
  staymitar list            list guests currently checked in`

// desk bundles what every subcommand needs.
type desk struct {
	cfg      *config.Config
	service  *frontdesk.Service
	receipts *receipt.Renderer
	journal  *logbook.Logbook
}

func openDesk(projectDir string) (*desk, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	journal, err := logbook.New(cfg.JournalPath())
	if err != nil {
		return nil, err
	}
	info := cfg.Hotel()
	return &desk{
		cfg:      cfg,
		service:  frontdesk.NewService(store.New(cfg.DataFile()), cfg.Catalog(), journal),
		receipts: receipt.NewRenderer(cfg.ReceiptsDir(), receipt.Header{Name: info.Name, Location: info.Location, Currency: info.Currency}),
		journal:  journal,
	}, nil
}

func (d *desk) money(v float64) string {
	return fmt.Sprintf("%s %.2f", d.cfg.Hotel().Currency, v)
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, projectDir string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return exitUsage
	}
	switch args[0] {
	case "init":
		return runInit(args[1:], projectDir, stdout, stderr)
	case "checkin":
		return runCheckIn(args[1:], projectDir, stdout, stderr)
	case "checkout", "info":
		return runRoom(args[0], args[1:], projectDir, stdout, stderr)
	case "list":
		return runList(args[1:], projectDir, stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usage)
		return exitOK
	}
	fmt.Fprintf(stderr, "unknown command %q\n\n%s\n", args[0], usage)
	return exitUsage
}

func runInit(args []string, projectDir string, stdout, stderr io.Writer) int {
	if len(args) != 0 {
		fmt.Fprintln(stderr, "Usage: staymitar init")
		return exitUsage
	}
	if err := config.InitDir(projectDir); err != nil {
		fmt.Fprintf(stderr, "Error initializing .staymitar directory: %v\n", err)
		return exitError
	}
	fmt.Fprintf(stdout, "Initialized %s in %s\n", config.StayMitarDir, projectDir)
	return exitOK
}

func runCheckIn(args []string, projectDir string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("checkin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var form frontdesk.CheckInForm
	fs.StringVar(&form.Name, "name", "", "guest name (letters only)")
	fs.StringVar(&form.Address, "address", "", "guest address")
	fs.StringVar(&form.Mobile, "mobile", "", "10 digit mobile number")
	fs.StringVar(&form.Days, "days", "", "number of nights")
	fs.StringVar(&form.RoomClass, "room-class", "", "room class id")
	fs.StringVar(&form.PaymentMethod, "payment", "", "payment method id")
	withReceipt := fs.Bool("receipt", false, "write a text and PDF receipt")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return exitUsage
	}

	d, err := openDesk(projectDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading front desk: %v\n", err)
		return exitError
	}
	booking, err := d.service.CheckIn(form)
	if err != nil {
		fmt.Fprintf(stderr, "Check-in failed: %v\n", err)
		return exitError
	}
	fmt.Fprintf(stdout, "Room No. %d allocated to %s\n", booking.RoomNumber, strings.ToUpper(booking.Name))
	fmt.Fprintf(stdout, "Total bill: %s\n", d.money(booking.Price))

	if *withReceipt {
		rec, err := d.receipts.Render(booking)
		if err != nil {
			d.journal.Warn("receipt", "room %d: %v", booking.RoomNumber, err)
			fmt.Fprintf(stderr, "Receipt failed: %v\n", err)
			return exitError
		}
		d.journal.Info("receipt", "%s issued for room %d", rec.Number, booking.RoomNumber)
		fmt.Fprintf(stdout, "Receipt %s: %s\n", rec.Number, rec.PDFPath)
	}
	return exitOK
}

func runRoom(name string, args []string, projectDir string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintf(stderr, "Usage: staymitar %s ROOM\n", name)
		return exitUsage
	}
	room, err := frontdesk.ParseRoomNumber(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitUsage
	}
	d, err := openDesk(projectDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading front desk: %v\n", err)
		return exitError
	}

	if name == "checkout" {
		b, err := d.service.CheckOut(room)
		if err != nil {
			fmt.Fprintf(stderr, "Checkout failed: %v\n", err)
			return exitError
		}
		fmt.Fprintf(stdout, "Thank you %s for visiting us. Room No. %d is now free.\n", strings.ToUpper(b.Name), b.RoomNumber)
		return exitOK
	}

	b, err := d.service.FindByRoom(room)
	if err != nil {
		fmt.Fprintf(stderr, "Lookup failed: %v\n", err)
		return exitError
	}
	class := "-"
	if rc, ok := d.service.Catalog().ClassOf(b.RoomNumber); ok {
		class = rc.Name
	}
	fmt.Fprintf(stdout, "Name       : %s\n", strings.ToUpper(b.Name))
	fmt.Fprintf(stdout, "Address    : %s\n", b.Address)
	fmt.Fprintf(stdout, "Mobile     : %s\n", b.Mobile)
	fmt.Fprintf(stdout, "Room No.   : %d (%s)\n", b.RoomNumber, class)
	fmt.Fprintf(stdout, "Nights     : %d\n", b.Days)
	fmt.Fprintf(stdout, "Total bill : %s\n", d.money(b.Price))
	return exitOK
}

func runList(args []string, projectDir string, stdout, stderr io.Writer) int {
	if len(args) != 0 {
		fmt.Fprintln(stderr, "Usage: staymitar list")
		return exitUsage
	}
	d, err := openDesk(projectDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading front desk: %v\n", err)
		return exitError
	}
	entries, err := d.service.ListActive()
	if err != nil {
		fmt.Fprintf(stderr, "List failed: %v\n", err)
		return exitError
	}
	fmt.Fprintln(stdout, tui.GuestTable(entries))
	return exitOK
}
