// Command simulate runs offline round-robin contests between the built-in
// policies and prints a leaderboard. Useful for tuning policy weights and
// match configs without standing up the HTTP server.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/snake-showdown/game/bot"
	"github.com/wricardo/snake-showdown/game/config"
	"github.com/wricardo/snake-showdown/game/engine"
	"github.com/wricardo/snake-showdown/game/match"
)

func main() {
	cmd := &cli.Command{
		Name:  "simulate",
		Usage: "run a round-robin contest between the built-in snake policies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "match config name to load (empty uses the default config)",
			},
			&cli.StringFlag{
				Name:  "config-dir",
				Value: "configs",
				Usage: "directory holding match config JSON files",
			},
			&cli.IntFlag{
				Name:  "games",
				Value: 10,
				Usage: "matches per pairing (slots alternate between games)",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 1,
				Usage: "base seed for the contest (0 uses the current time)",
			},
			&cli.StringFlag{
				Name:  "csv",
				Usage: "write per-match results to this CSV file",
			},
		},
		Action: runContest,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("simulate: %v", err)
	}
}

// standing accumulates one policy's contest record. Points follow the usual
// 3/1/0 scheme: three for a win, one each for a draw.
type standing struct {
	Name   string
	Played int
	Wins   int
	Draws  int
	Losses int
	Points int
	Score  int
}

// matchRecord is one finished match, flattened for CSV export
type matchRecord struct {
	Match   int
	Config  string
	AgentA  string
	AgentB  string
	Seed    int64
	Rounds  int
	WinsA   int
	WinsB   int
	Draws   int
	ScoreA  int
	ScoreB  int
	Winner  string
}

func runContest(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadContestConfig(cmd.String("config-dir"), cmd.String("config"))
	if err != nil {
		return err
	}

	games := int(cmd.Int("games"))
	if games < 1 {
		return fmt.Errorf("games must be at least 1, got %d", games)
	}
	baseSeed := int64(cmd.Int("seed"))
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	names := bot.Names()
	standings := make(map[string]*standing, len(names))
	for _, name := range names {
		standings[name] = &standing{Name: name}
	}

	fmt.Printf("Contest: %s | %d policies, %d games per pairing, base seed %d\n\n",
		cfg.Name, len(names), games, baseSeed)

	var records []matchRecord
	matchNum := 0
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			for g := 0; g < games; g++ {
				matchNum++
				a, b := names[i], names[j]
				// Alternate slot assignment so neither policy owns slot A
				// for the whole pairing.
				if g%2 == 1 {
					a, b = b, a
				}
				seed := baseSeed + int64(matchNum)

				summary, err := playMatch(cfg, a, b, seed, matchNum)
				if err != nil {
					return fmt.Errorf("match %d (%s vs %s): %w", matchNum, a, b, err)
				}
				recordOutcome(standings, summary)
				records = append(records, matchRecord{
					Match:  matchNum,
					Config: cfg.Name,
					AgentA: summary.Agents[engine.SlotA],
					AgentB: summary.Agents[engine.SlotB],
					Seed:   seed,
					Rounds: len(summary.Rounds),
					WinsA:  summary.Wins[engine.SlotA],
					WinsB:  summary.Wins[engine.SlotB],
					Draws:  summary.Draws,
					ScoreA: summary.TotalScores[engine.SlotA],
					ScoreB: summary.TotalScores[engine.SlotB],
					Winner: summary.Winner,
				})

				outcome := summary.Winner
				if outcome == "" {
					outcome = "draw"
				}
				fmt.Printf("[MATCH %3d] %s vs %s | rounds=%d score=%d-%d -> %s\n",
					matchNum, summary.Agents[engine.SlotA], summary.Agents[engine.SlotB],
					len(summary.Rounds),
					summary.TotalScores[engine.SlotA], summary.TotalScores[engine.SlotB],
					outcome)
			}
		}
	}

	printStandings(standings, names)

	if path := cmd.String("csv"); path != "" {
		if err := writeCSV(path, records); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
		fmt.Printf("\nResults written to %s\n", path)
	}
	return nil
}

// loadContestConfig resolves the match config for the contest. An empty name
// falls back to the manager's default config.
func loadContestConfig(dir, name string) (*engine.MatchConfig, error) {
	manager, err := config.NewManager(dir)
	if err != nil {
		return nil, fmt.Errorf("opening config dir %s: %w", dir, err)
	}
	if name == "" {
		return manager.GetDefault(), nil
	}
	cfg, err := manager.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", name, err)
	}
	return cfg, nil
}

// playMatch runs one policy-vs-policy tournament to completion. The agents
// take the policy names so the summary reads back without a slot lookup.
func playMatch(base *engine.MatchConfig, policyA, policyB string, seed int64, num int) (*engine.Summary, error) {
	cfg := *base
	cfg.AgentAName = policyA
	cfg.AgentBName = policyB

	pa, err := bot.New(policyA, seed)
	if err != nil {
		return nil, err
	}
	pb, err := bot.New(policyB, seed+1)
	if err != nil {
		return nil, err
	}

	m, err := match.NewMatch(fmt.Sprintf("sim-%04d", num), &cfg, pa, pb, seed)
	if err != nil {
		return nil, err
	}
	return m.RunToCompletion()
}

func recordOutcome(standings map[string]*standing, summary *engine.Summary) {
	a := standings[summary.Agents[engine.SlotA]]
	b := standings[summary.Agents[engine.SlotB]]
	a.Played++
	b.Played++
	a.Score += summary.TotalScores[engine.SlotA]
	b.Score += summary.TotalScores[engine.SlotB]

	switch summary.Winner {
	case a.Name:
		a.Wins++
		a.Points += 3
		b.Losses++
	case b.Name:
		b.Wins++
		b.Points += 3
		a.Losses++
	default:
		a.Draws++
		b.Draws++
		a.Points++
		b.Points++
	}
}

func printStandings(standings map[string]*standing, names []string) {
	table := make([]*standing, 0, len(names))
	for _, name := range names {
		table = append(table, standings[name])
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		if table[i].Score != table[j].Score {
			return table[i].Score > table[j].Score
		}
		return table[i].Name < table[j].Name
	})

	fmt.Printf("\n%-4s %-12s %6s %4s %5s %6s %6s %6s\n",
		"#", "Policy", "Played", "W", "D", "L", "Pts", "Score")
	for i, s := range table {
		fmt.Printf("%-4d %-12s %6d %4d %5d %6d %6d %6d\n",
			i+1, s.Name, s.Played, s.Wins, s.Draws, s.Losses, s.Points, s.Score)
	}
	if len(table) > 1 && table[0].Points > table[1].Points {
		fmt.Printf("\nContest winner: %s\n", table[0].Name)
	} else {
		fmt.Printf("\nContest drawn on points\n")
	}
}

func writeCSV(path string, records []matchRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"match", "config", "agent_a", "agent_b", "seed",
		"rounds", "wins_a", "wins_b", "draws", "score_a", "score_b", "winner",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Match),
			r.Config,
			r.AgentA,
			r.AgentB,
			strconv.FormatInt(r.Seed, 10),
			strconv.Itoa(r.Rounds),
			strconv.Itoa(r.WinsA),
			strconv.Itoa(r.WinsB),
			strconv.Itoa(r.Draws),
			strconv.Itoa(r.ScoreA),
			strconv.Itoa(r.ScoreB),
			r.Winner,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
