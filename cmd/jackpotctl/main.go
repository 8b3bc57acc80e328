package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"art-contest/internal/config"
	"art-contest/internal/database"
	"art-contest/internal/logger"
	"art-contest/internal/models"
	"art-contest/internal/repository"
	"art-contest/internal/services"
	"art-contest/internal/utils"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

// ctl carries what every command needs once the database is open
type ctl struct {
	svc *services.Services
	out io.Writer
}

// opener builds a ctl and returns a func releasing what it holds
type opener func() (*ctl, func(), error)

func main() {
	app := newApp(openDatabase)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(open opener) *cli.App {
	app := cli.NewApp()
	app.Name = "jackpotctl"
	app.Usage = "Operator commands for contests and the jackpot"
	app.Action = cli.ShowAppHelp
	app.Commands = []*cli.Command{
		{
			Name:     "draw-winner",
			Usage:    "Select the winner of a jackpot draw",
			Category: "Jackpot",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "draw", Usage: "draw id", Required: true},
			},
			Action: withCtl(open, drawWinner),
		},
		{
			Name:     "award-entries",
			Usage:    "Award jackpot entries to a profile",
			Category: "Jackpot",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "user", Usage: "profile id", Required: true},
				&cli.IntFlag{Name: "count", Usage: "entries to award (1-1000)", Value: 1},
				&cli.StringFlag{Name: "reason", Usage: "source reason", Value: string(models.EntrySourceAdminBonus)},
				&cli.StringFlag{Name: "competition", Usage: "optional contest id"},
			},
			Action: withCtl(open, awardEntries),
		},
		{
			Name:     "process-results",
			Usage:    "Complete a contest and award its winners",
			Category: "Contests",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "contest", Usage: "contest id; omit to process every contest that has ended"},
			},
			Action: withCtl(open, processResults),
		},
		{
			Name:     "set-role",
			Usage:    "Grant or revoke admin access",
			Category: "Profiles",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "profile", Usage: "profile id", Required: true},
				&cli.StringFlag{Name: "role", Usage: "user or admin", Required: true},
			},
			Action: withCtl(open, setRole),
		},
	}
	return app
}

// withCtl opens the database before running a command and closes it after
func withCtl(open opener, fn func(*cli.Context, *ctl) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		x, release, err := open()
		if err != nil {
			return err
		}
		defer release()
		return fn(c, x)
	}
}

// openDatabase connects with the environment configuration
func openDatabase() (*ctl, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	return newCtl(db, os.Stdout), func() { database.Close(db) }, nil
}

func newCtl(db *gorm.DB, out io.Writer) *ctl {
	repo := repository.NewRepository(db)
	return &ctl{svc: services.NewServices(repo, repository.NewProcedures(db)), out: out}
}

func drawWinner(c *cli.Context, x *ctl) error {
	drawID, ok := utils.ParseUUIDv4(c.String("draw"))
	if !ok {
		return fmt.Errorf("invalid --draw: must be a UUID v4")
	}
	result, err := x.svc.Jackpot.DrawWinner(c.Context, drawID)
	if err != nil {
		return err
	}
	return printJSON(x.out, result)
}

func awardEntries(c *cli.Context, x *ctl) error {
	userID, ok := utils.ParseUUIDv4(c.String("user"))
	if !ok {
		return fmt.Errorf("invalid --user: must be a UUID v4")
	}
	params := repository.AddEntriesParams{
		UserID:       userID,
		EntryCount:   c.Int("count"),
		SourceReason: models.EntrySource(c.String("reason")),
	}
	if raw := c.String("competition"); raw != "" {
		id, ok := utils.ParseUUIDv4(raw)
		if !ok {
			return fmt.Errorf("invalid --competition: must be a UUID v4")
		}
		params.CompetitionID = &id
	}

	entry, err := x.svc.Jackpot.AwardEntries(c.Context, params)
	if err != nil {
		return err
	}
	return printJSON(x.out, entry)
}

func processResults(c *cli.Context, x *ctl) error {
	raw := c.String("contest")
	if raw == "" {
		n, err := x.svc.Results.ProcessDueContests(c.Context)
		if err != nil {
			return err
		}
		return printJSON(x.out, map[string]int{"processed": n})
	}

	contestID, ok := utils.ParseUUIDv4(raw)
	if !ok {
		return fmt.Errorf("invalid --contest: must be a UUID v4")
	}
	results, err := x.svc.Results.ProcessResults(c.Context, contestID)
	if err != nil {
		return err
	}
	return printJSON(x.out, results)
}

func setRole(c *cli.Context, x *ctl) error {
	profileID, ok := utils.ParseUUIDv4(c.String("profile"))
	if !ok {
		return fmt.Errorf("invalid --profile: must be a UUID v4")
	}
	profile, err := x.svc.Admin.SetRole(c.Context, profileID, c.String("role"), nil)
	if err != nil {
		return err
	}
	return printJSON(x.out, profile)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
