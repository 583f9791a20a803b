package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/footyhub/uganda-footy-hub/internal/gateway"
)

var flagShowStats bool

var fetchCmd = &cobra.Command{
	Use:       "fetch <events|teams|news|weather> [city]",
	Short:     "Read one resource through the gateway and print it as JSON",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"events", "teams", "news", "weather"},
	RunE:      runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&flagShowStats, "stats", false, "print the gateway counters after the value")
}

func runFetch(cmd *cobra.Command, args []string) error {
	res, err := gateway.ParseResource(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// stdout carries only the JSON; failures show up in --stats
	log := zap.NewNop()

	gw, err := newGateway(cfg, newFetchClient(cfg, log), log)
	if err != nil {
		return err
	}

	value, err := gw.Get(cmd.Context(), res, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	if err := enc.Encode(value); err != nil {
		return err
	}
	if flagShowStats {
		return enc.Encode(gw.Stats())
	}
	return nil
}
