package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecofun-kids/ecofun/internal/storage"
)

var (
	flagPointsHistory int
	flagPointsLeaders bool
)

var pointsCmd = &cobra.Command{
	Use:   "points [player]",
	Short: "Show EcoFun points",
	Long: `Show a player's EcoFun points total and recent awards. Without a
player name, the --player flag is used.

Examples:
  ecofun points
  ecofun points mia --history 20
  ecofun points --leaders`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPoints,
}

func init() {
	pointsCmd.Flags().IntVar(&flagPointsHistory, "history", 10, "Number of recent awards to show")
	pointsCmd.Flags().BoolVar(&flagPointsLeaders, "leaders", false, "Show the players with the most points")
}

func runPoints(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagPointsLeaders {
		printLeaders(store)
		return
	}

	player := flagPlayer
	if len(args) == 1 {
		player = args[0]
	}
	if player == "" {
		fmt.Fprintln(os.Stderr, "Error: no player given; pass a name or --player")
		return
	}

	total, err := store.TotalPoints(player)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading points: %v\n", err)
		return
	}

	fmt.Printf("%s has %d EcoFun points\n", player, total)

	history, err := store.PointsHistory(player, flagPointsHistory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
		return
	}
	if len(history) == 0 {
		fmt.Println()
		fmt.Println("No points yet. Finish a round and press Enter to claim them!")
		return
	}

	fmt.Println()
	fmt.Printf("  %-8s  %-10s  %s\n", "Points", "Game", "Date")
	fmt.Printf("  %-8s  %-10s  %s\n", "------", "----", "----")
	for _, e := range history {
		fmt.Printf("  %-8d  %-10s  %s\n", e.Points, e.Source, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printLeaders(store *storage.Store) {
	leaders, err := store.PointsLeaders(flagPointsHistory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading leaders: %v\n", err)
		return
	}

	fmt.Println("EcoFun Points Leaders")
	fmt.Println()
	if len(leaders) == 0 {
		fmt.Println("No points awarded yet.")
		return
	}

	fmt.Printf("  %-4s  %-16s  %s\n", "Rank", "Player", "Points")
	fmt.Printf("  %-4s  %-16s  %s\n", "----", "------", "------")
	for i, p := range leaders {
		fmt.Printf("  %-4d  %-16s  %d\n", i+1, p.Player, p.Points)
	}
}
