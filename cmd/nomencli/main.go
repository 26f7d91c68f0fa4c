// nomencli is a command-line client for the Nomen name registry. Write
// commands print unsigned transaction templates as JSON; signing and
// broadcast are left to the caller's wallet.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nomen-protocol/nomen-go/config"
	"github.com/nomen-protocol/nomen-go/internal/assemble"
	"github.com/nomen-protocol/nomen-go/internal/covenant"
	"github.com/nomen-protocol/nomen-go/internal/engine"
	"github.com/nomen-protocol/nomen-go/internal/ledger"
	"github.com/nomen-protocol/nomen-go/internal/log"
	"github.com/nomen-protocol/nomen-go/internal/records"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Parse global flags that appear before the subcommand.
	configPath := ""
	covenantsPath := "covenants.json"
	network := "mainnet"
	ledgerURL := ""

	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--config" && len(args) > 1:
			configPath = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--config="):
			configPath = args[0][len("--config="):]
			args = args[1:]
		case args[0] == "--covenants" && len(args) > 1:
			covenantsPath = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--covenants="):
			covenantsPath = args[0][len("--covenants="):]
			args = args[1:]
		case args[0] == "--network" && len(args) > 1:
			network = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--network="):
			network = args[0][len("--network="):]
			args = args[1:]
		case args[0] == "--ledger" && len(args) > 1:
			ledgerURL = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--ledger="):
			ledgerURL = args[0][len("--ledger="):]
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg := config.Default(config.NetworkType(network))
	if configPath != "" {
		values, err := config.LoadFile(configPath)
		if err != nil {
			fatal("load config: %v", err)
		}
		if err := config.ApplyFileConfig(cfg, values); err != nil {
			fatal("apply config: %v", err)
		}
	}
	if ledgerURL != "" {
		cfg.Ledger.URL = ledgerURL
	}
	if err := cfg.Validate(); err != nil {
		fatal("config: %v", err)
	}

	if cfg.Network == config.Testnet {
		types.SetAddressHRP(types.TestnetHRP)
	} else {
		types.SetAddressHRP(types.MainnetHRP)
	}

	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("log: %v", err)
	}

	set, err := covenant.LoadSet(covenantsPath)
	if err != nil {
		fatal("covenants: %v", err)
	}

	timeout := time.Duration(cfg.Ledger.TimeoutSeconds) * time.Second
	src := ledger.NewClientWithTimeout(cfg.Ledger.URL, timeout)
	eng, err := engine.New(cfg, set, src)
	if err != nil {
		fatal("engine: %v", err)
	}
	defer eng.Close()

	ctx := context.Background()
	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "domain":
		cmdDomain(ctx, eng, cmdArgs)
	case "auctions":
		cmdAuctions(ctx, eng)
	case "resolve":
		cmdResolve(ctx, eng, cmdArgs)
	case "names":
		cmdNames(ctx, eng, cmdArgs)
	case "records":
		cmdRecords(ctx, eng, cmdArgs)
	case "auction":
		cmdAuction(ctx, eng, cmdArgs)
	case "bid":
		cmdBid(ctx, eng, cmdArgs)
	case "claim":
		cmdClaim(ctx, eng, cmdArgs)
	case "publish":
		cmdPublish(ctx, eng, cmdArgs)
	case "accumulate":
		cmdAccumulate(ctx, eng, cmdArgs)
	case "penalize":
		cmdPenalize(ctx, eng, cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: nomencli [global flags] <command> [flags]

Global flags:
  --config <path>      Configuration file (.conf)
  --covenants <path>   Covenant deployment descriptor (default: covenants.json)
  --network <net>      mainnet (default) or testnet
  --ledger <url>       Ledger RPC endpoint (overrides config)

Queries:
  domain <name>                   Show a name's status
  auctions                        List running auctions
  resolve <name>                  Show a name's owner address
  names <address>                 List names owned by an address
  records <name>                  Show a name's record tree

Templates (printed as JSON, sign and broadcast externally):
  auction <name> --amount <sats> --bidder <addr>
                                  Start an auction
  bid <name> --amount <sats> --bidder <addr>
                                  Raise a running auction
  claim <name> --winner <addr>    Claim a matured auction
  publish <name> --owner <addr> [--add <record>]... [--remove <record>]...
                                  Publish and revoke records
  accumulate --payer <addr>       Sweep accrued fees to the collector
  penalize <invalid|duplicate|illegal> <name> --reward <addr> --payer <addr>
                                  Dissolve a rule-breaking auction
`)
}

// ── queries ─────────────────────────────────────────────────────────────

func cmdDomain(ctx context.Context, eng *engine.Engine, args []string) {
	if len(args) != 1 {
		fatal("usage: domain <name>")
	}
	d, err := eng.Domain(ctx, args[0])
	if err != nil {
		fatal("domain: %v", err)
	}

	fmt.Printf("Name:    %s\n", d.Name)
	fmt.Printf("Status:  %s\n", d.Status)
	if !d.Handle.Address.IsZero() {
		fmt.Printf("Address: %s\n", d.Handle.Address)
	}
	if d.Auction != nil {
		fmt.Printf("Auction: id %d, current bid %d\n", d.Auction.RegistrationID, d.Auction.UTXO.Value)
	}
}

func cmdAuctions(ctx context.Context, eng *engine.Engine) {
	infos, err := eng.Auctions(ctx)
	if err != nil {
		fatal("auctions: %v", err)
	}
	if len(infos) == 0 {
		fmt.Println("No running auctions")
		return
	}
	for _, info := range infos {
		fmt.Printf("%-32s id %-8d bid %-12d min next %d\n",
			info.Name, info.RegistrationID, info.CurrentBid, info.MinimumNextBid)
	}
}

func cmdResolve(ctx context.Context, eng *engine.Engine, args []string) {
	if len(args) != 1 {
		fatal("usage: resolve <name>")
	}
	addr, err := eng.ResolveName(ctx, args[0])
	if err != nil {
		fatal("resolve: %v", err)
	}
	fmt.Println(addr)
}

func cmdNames(ctx context.Context, eng *engine.Engine, args []string) {
	if len(args) != 1 {
		fatal("usage: names <address>")
	}
	addr, err := types.ParseAddress(args[0])
	if err != nil {
		fatal("address: %v", err)
	}
	names, err := eng.LookupAddress(ctx, addr)
	if err != nil {
		fatal("names: %v", err)
	}
	for _, n := range names {
		fmt.Println(n)
	}
}

func cmdRecords(ctx context.Context, eng *engine.Engine, args []string) {
	if len(args) != 1 {
		fatal("usage: records <name>")
	}
	root, err := eng.FetchRecords(ctx, args[0])
	if err != nil {
		fatal("records: %v", err)
	}
	printNode(root, "")
}

func printNode(n *records.Node, prefix string) {
	for _, key := range n.Keys() {
		child, _ := n.Child(key)
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if child.Value != "" {
			fmt.Printf("%s=%s\n", path, child.Value)
		}
		printNode(child, path)
	}
}

// ── templates ───────────────────────────────────────────────────────────

func cmdAuction(ctx context.Context, eng *engine.Engine, args []string) {
	name, flags := splitName(args, "auction <name> --amount <sats> --bidder <addr>")
	amount := flagUint(flags, "--amount")
	bidder := flagAddr(flags, "--bidder")

	tpl, err := eng.Auction(ctx, assemble.AuctionParams{Name: name, Amount: amount, Bidder: bidder})
	if err != nil {
		fatal("auction: %v", err)
	}
	printTemplate(tpl)
}

func cmdBid(ctx context.Context, eng *engine.Engine, args []string) {
	name, flags := splitName(args, "bid <name> --amount <sats> --bidder <addr>")
	amount := flagUint(flags, "--amount")
	bidder := flagAddr(flags, "--bidder")

	tpl, err := eng.Bid(ctx, assemble.BidParams{Name: name, Amount: amount, Bidder: bidder})
	if err != nil {
		fatal("bid: %v", err)
	}
	printTemplate(tpl)
}

func cmdClaim(ctx context.Context, eng *engine.Engine, args []string) {
	name, flags := splitName(args, "claim <name> --winner <addr>")
	winner := flagAddr(flags, "--winner")

	tpl, err := eng.ClaimDomain(ctx, assemble.ClaimDomainParams{Name: name, Winner: winner})
	if err != nil {
		fatal("claim: %v", err)
	}
	printTemplate(tpl)
}

func cmdPublish(ctx context.Context, eng *engine.Engine, args []string) {
	name, flags := splitName(args, "publish <name> --owner <addr> [--add <record>]... [--remove <record>]...")
	owner := flagAddr(flags, "--owner")

	params := assemble.RecordsParams{Name: name, Owner: owner}
	for i := 0; i < len(flags)-1; i++ {
		switch flags[i] {
		case "--add":
			params.Add = append(params.Add, flags[i+1])
			i++
		case "--remove":
			params.Remove = append(params.Remove, flags[i+1])
			i++
		}
	}

	tpl, err := eng.Records(ctx, params)
	if err != nil {
		fatal("publish: %v", err)
	}
	printTemplate(tpl)
}

func cmdAccumulate(ctx context.Context, eng *engine.Engine, args []string) {
	payer := flagAddr(args, "--payer")
	tpl, err := eng.Accumulate(ctx, assemble.AccumulateParams{Payer: payer})
	if err != nil {
		fatal("accumulate: %v", err)
	}
	printTemplate(tpl)
}

func cmdPenalize(ctx context.Context, eng *engine.Engine, args []string) {
	if len(args) < 2 {
		fatal("usage: penalize <invalid|duplicate|illegal> <name> --reward <addr> --payer <addr>")
	}
	kind := args[0]
	params := assemble.PenaltyParams{
		Name:   args[1],
		Reward: flagAddr(args[2:], "--reward"),
		Payer:  flagAddr(args[2:], "--payer"),
	}

	var (
		tpl *assemble.Template
		err error
	)
	switch kind {
	case "invalid":
		tpl, err = eng.PenalizeInvalidName(ctx, params)
	case "duplicate":
		tpl, err = eng.PenalizeDuplicateAuction(ctx, params)
	case "illegal":
		tpl, err = eng.PenalizeIllegalAuction(ctx, params)
	default:
		fatal("unknown penalty kind: %s", kind)
	}
	if err != nil {
		fatal("penalize %s: %v", kind, err)
	}
	printTemplate(tpl)
}

// ── helpers ─────────────────────────────────────────────────────────────

func splitName(args []string, usage string) (string, []string) {
	if len(args) < 1 || strings.HasPrefix(args[0], "--") {
		fatal("usage: %s", usage)
	}
	return args[0], args[1:]
}

func flagValue(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	for _, a := range args {
		if strings.HasPrefix(a, flag+"=") {
			return a[len(flag)+1:]
		}
	}
	fatal("missing %s", flag)
	return ""
}

func flagUint(args []string, flag string) uint64 {
	v, err := strconv.ParseUint(flagValue(args, flag), 10, 64)
	if err != nil {
		fatal("%s: %v", flag, err)
	}
	return v
}

func flagAddr(args []string, flag string) types.Address {
	addr, err := types.ParseAddress(flagValue(args, flag))
	if err != nil {
		fatal("%s: %v", flag, err)
	}
	return addr
}

func printTemplate(tpl *assemble.Template) {
	data, err := json.MarshalIndent(tpl, "", "  ")
	if err != nil {
		fatal("encode template: %v", err)
	}
	fmt.Println(string(data))
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
