// Command rolerepair is the operator tool for role/role-level drift. It can
// list every account with its policy flags, correct a single account by
// email, or bulk-correct every account matching a selector. Corrections are
// idempotent and safe to re-run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"shopauth-service/internal/config"
	"shopauth-service/internal/domain/account"
	"shopauth-service/internal/pkg/roles"
	"shopauth-service/internal/repository/postgres"
	"shopauth-service/internal/service/repair"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[MAIN] No .env file found, relying on system env vars")
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "rolerepair: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: rolerepair <list|fix-one|fix-many> [flags]")
	}
	command := args[0]

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("account store unavailable: %w", err)
	}
	// Always release the connection on the way out, success or failure.
	defer pool.Close()

	repo := postgres.NewAccountRepository(pool)
	svc := repair.NewService(repo, cfg.PrivilegedFloor, logger)

	switch command {
	case "list":
		return runList(ctx, svc)
	case "fix-one":
		return runFixOne(ctx, svc, args[1:])
	case "fix-many":
		return runFixMany(ctx, svc, args[1:])
	default:
		return fmt.Errorf("unknown command %q (want list, fix-one or fix-many)", command)
	}
}

func runList(ctx context.Context, svc *repair.Service) error {
	snapshot, err := svc.Audit(ctx)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	printSnapshot(snapshot)
	fmt.Printf("\n%d account(s), %d flagged (floor: level <= %d)\n",
		len(snapshot.Entries), len(snapshot.Flagged()), snapshot.Floor)
	return nil
}

func runFixOne(ctx context.Context, svc *repair.Service, args []string) error {
	fs := flag.NewFlagSet("fix-one", flag.ContinueOnError)
	email := fs.String("email", "", "email of the account to correct")
	role := fs.String("role", "", "target role (one of: "+fmt.Sprint(roles.ValidRoles())+")")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *role == "" {
		return fmt.Errorf("fix-one requires -email and -role")
	}

	before, err := svc.Audit(ctx)
	if err != nil {
		return fmt.Errorf("audit failed (attempted fix-one for %s): %w", *email, err)
	}
	fmt.Println("before:")
	printSnapshot(before)

	result, err := svc.RepairOne(ctx, *email, *role)
	if err != nil {
		return fmt.Errorf("repair failed (attempted fix-one for %s): %w", *email, err)
	}

	after, err := svc.Audit(ctx)
	if err != nil {
		return fmt.Errorf("audit after repair failed: %w", err)
	}
	fmt.Println("\nafter:")
	printSnapshot(after)

	fmt.Printf("\ncorrected %d account(s): %s -> (%s, %d)\n",
		result.Affected, result.Email, result.Role, result.RoleLevel)
	return nil
}

func runFixMany(ctx context.Context, svc *repair.Service, args []string) error {
	fs := flag.NewFlagSet("fix-many", flag.ContinueOnError)
	belowFloor := fs.Bool("below-floor", false, "select accounts at or below the privileged floor")
	mismatched := fs.Bool("mismatched", false, "select accounts whose role pair drifted from the hierarchy")
	floor := fs.Int("floor", -1, "override the configured privileged floor")
	role := fs.String("role", "", "target role (one of: "+fmt.Sprint(roles.ValidRoles())+")")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *role == "" {
		return fmt.Errorf("fix-many requires -role")
	}
	if *belowFloor == *mismatched {
		return fmt.Errorf("fix-many requires exactly one of -below-floor or -mismatched")
	}

	effectiveFloor := config.Load().PrivilegedFloor
	if *floor >= 0 {
		effectiveFloor = *floor
	}

	var predicate repair.Predicate
	if *belowFloor {
		predicate = repair.BelowFloor(effectiveFloor)
	} else {
		predicate = repair.MismatchedPair()
	}

	before, err := svc.Audit(ctx)
	if err != nil {
		return fmt.Errorf("audit failed (attempted fix-many): %w", err)
	}
	fmt.Println("before:")
	printSnapshot(before)

	count, err := svc.RepairMany(ctx, predicate, *role)
	if err != nil {
		return fmt.Errorf("bulk repair failed: %w", err)
	}

	after, err := svc.Audit(ctx)
	if err != nil {
		return fmt.Errorf("audit after repair failed: %w", err)
	}
	fmt.Println("\nafter:")
	printSnapshot(after)

	fmt.Printf("\ncorrected %d account(s)\n", count)
	return nil
}

func printSnapshot(snapshot *account.AuditSnapshot) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tROLE\tLEVEL\tSTATUS\tFLAGS")
	for _, e := range snapshot.Entries {
		flags := ""
		if e.PairMismatch {
			flags += " pair-mismatch"
		}
		if e.BelowFloor {
			flags += " below-floor"
		}
		if flags == "" {
			flags = " -"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", e.Email, e.Role, e.RoleLevel, e.Status, flags[1:])
	}
	w.Flush()
}
