package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"pet-welfare-dashboard/internal/adapters/welfareapi"
	"pet-welfare-dashboard/internal/dashboard"
	"pet-welfare-dashboard/internal/platform/config"
	"pet-welfare-dashboard/internal/platform/httpclient"
	"pet-welfare-dashboard/internal/platform/logger"

	"github.com/docopt/docopt-go"
)

const DashboardCtlVersion = "0.1.0"

func main() {
	usage := `Pet welfare dashboard control.

The api url defaults to WELFARE_API_BASE_URL (or http://localhost:8081).

Usage:
    dashboardctl animals [--api_url=<api_url>] [--species=<species>]
    dashboardctl stats [--api_url=<api_url>]
    dashboardctl welfare [--api_url=<api_url>] [--species=<species>]
    dashboardctl adoption [--api_url=<api_url>] [--state=<state>]
    dashboardctl add [--api_url=<api_url>]
        --id=<id>
        --org=<org_id>
        --species=<species>
        --sex=<sex>
        --age=<age_months>
    dashboardctl delete [--api_url=<api_url>] <id> [--yes]

Options:
    -h --help              Show this screen.
    --version              Show version.
    --api_url=<api_url>    Welfare API base url.
    --species=<species>    Species filter, "All" for none.
    --state=<state>        State filter, "All" for none.
    --id=<id>              Animal id.
    --org=<org_id>         Organization id.
    --sex=<sex>            M, F or U.
    --age=<age_months>     Age in months.
    --yes                  Skip the delete confirmation.`

	opts, err := docopt.ParseArgs(usage, os.Args[1:], DashboardCtlVersion)
	if err != nil {
		panic(err)
	}

	o, err := newOrchestrator(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if v, _ := opts.Bool("animals"); v {
		err = listAnimals(ctx, o, opts)
	} else if v, _ := opts.Bool("stats"); v {
		err = stats(ctx, o)
	} else if v, _ := opts.Bool("welfare"); v {
		err = welfare(ctx, o, opts)
	} else if v, _ := opts.Bool("adoption"); v {
		err = adoption(ctx, o, opts)
	} else if v, _ := opts.Bool("add"); v {
		err = add(ctx, o, opts)
	} else if v, _ := opts.Bool("delete"); v {
		err = remove(ctx, o, opts)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newOrchestrator(opts docopt.Opts) (*dashboard.Orchestrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	baseURL := cfg.WelfareAPI.BaseURL
	if v, err := opts.String("--api_url"); err == nil && v != "" {
		baseURL = v
	}

	gw, err := httpclient.NewWithBaseURL(baseURL, cfg.WelfareAPI.Timeout)
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "dashboardctl",
		Output: os.Stderr,
	})
	gw.Log = log

	return dashboard.New(welfareapi.NewClient(gw), dashboard.Options{
		Log:       log,
		Confirmer: promptConfirmer{in: bufio.NewReader(os.Stdin)},
	}), nil
}

func optString(opts docopt.Opts, key string) string {
	v, _ := opts.String(key)
	return v
}

func listAnimals(ctx context.Context, o *dashboard.Orchestrator, opts docopt.Opts) error {
	if err := o.Mount(ctx); err != nil {
		return err
	}
	o.SetSpeciesFilter(optString(opts, "--species"))

	v := o.View()
	if v.Animals.Error != nil {
		return fmt.Errorf("animals: %s", *v.Animals.Error)
	}
	w := table()
	fmt.Fprintln(w, "ID\tORG\tSPECIES\tSEX\tAGE (MONTHS)")
	for _, a := range v.VisibleAnimals {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\n", a.ID, a.OrgID, a.Species, a.Sex, a.AgeMonths)
	}
	return w.Flush()
}

func stats(ctx context.Context, o *dashboard.Orchestrator) error {
	if err := o.Mount(ctx); err != nil {
		return err
	}
	v := o.View()
	if v.SpeciesCounts.Error != nil {
		return fmt.Errorf("stats: %s", *v.SpeciesCounts.Error)
	}
	w := table()
	fmt.Fprintln(w, "SPECIES\tCOUNT")
	for _, row := range v.SpeciesCounts.Data {
		fmt.Fprintf(w, "%s\t%d\n", row.Label(), row.Count)
	}
	return w.Flush()
}

func welfare(ctx context.Context, o *dashboard.Orchestrator, opts docopt.Opts) error {
	o.SetWelfareSpecies(optString(opts, "--species"))
	if err := wait(ctx, o.RunWelfareQuery(ctx)); err != nil {
		return err
	}
	s := o.View().WelfareFollowUps
	if s.Error != nil {
		return fmt.Errorf("welfare: %s", *s.Error)
	}
	w := table()
	fmt.Fprintln(w, "ID\tSPECIES\tAGE\tSEX\tORGANIZATION\tEXAM DATE\tSCORE\tNOTES")
	for _, row := range s.Data {
		notes := ""
		if row.Notes != nil {
			notes = *row.Notes
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%.1f\t%s\n",
			row.AnimalID, row.Species, row.AgeMonths, row.Sex, row.OrgName, row.ExamDate, row.HealthScore, notes)
	}
	return w.Flush()
}

func adoption(ctx context.Context, o *dashboard.Orchestrator, opts docopt.Opts) error {
	o.SetAdoptionState(optString(opts, "--state"))
	if err := wait(ctx, o.RunAdoptionQuery(ctx)); err != nil {
		return err
	}
	s := o.View().AdoptionStats
	if s.Error != nil {
		return fmt.Errorf("adoption: %s", *s.Error)
	}
	w := table()
	fmt.Fprintln(w, "STATE\tSPECIES\tADOPTIONS")
	for _, row := range s.Data {
		fmt.Fprintf(w, "%s\t%s\t%d\n", row.State, row.Species, row.AdoptionCount)
	}
	return w.Flush()
}

func add(ctx context.Context, o *dashboard.Orchestrator, opts docopt.Opts) error {
	err := o.SubmitAnimal(ctx, dashboard.AnimalForm{
		ID:        optString(opts, "--id"),
		OrgID:     optString(opts, "--org"),
		Species:   optString(opts, "--species"),
		Sex:       optString(opts, "--sex"),
		AgeMonths: optString(opts, "--age"),
	})
	fmt.Println(o.View().FormStatus)
	return err
}

func remove(ctx context.Context, o *dashboard.Orchestrator, opts docopt.Opts) error {
	id, err := opts.Int("<id>")
	if err != nil {
		return fmt.Errorf("animal id must be an integer")
	}
	var confirm dashboard.Confirmer
	if yes, _ := opts.Bool("--yes"); yes {
		confirm = dashboard.Confirmed(true)
	}
	if err := o.DeleteAnimal(ctx, id, confirm); err != nil {
		return err
	}
	fmt.Printf("Animal %d deleted.\n", id)
	return nil
}

// promptConfirmer pregunta por stdin antes de borrar.
type promptConfirmer struct {
	in *bufio.Reader
}

func (p promptConfirmer) Confirm(_ context.Context, animalID int) bool {
	fmt.Printf("Are you sure you want to delete animal %d? [y/N] ", animalID)
	line, _ := p.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func wait(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func table() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}
