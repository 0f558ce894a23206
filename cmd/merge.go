package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"daysync/core/config"
	"daysync/core/logger"
	"daysync/core/merge"
	"daysync/feature/catalog"

	"github.com/spf13/cobra"
)

var (
	mergeLocalPath  string
	mergeRemotePath string
)

// mergeCmd merges two snapshot files without touching any replica.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge two snapshot files offline",
	Long: `Merge a local and a remote snapshot file and print the result as JSON.

Examples:
  daysync merge day --local phone.json --remote server.json
  daysync merge products --local mine.json --remote theirs.json`,
}

var mergeDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Merge two day snapshots; prints no-op when nothing changes",
	RunE:  runMergeDay,
}

var mergeProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "Merge two product catalogs",
	RunE:  runMergeProducts,
}

func init() {
	mergeCmd.PersistentFlags().StringVar(&mergeLocalPath, "local", "", "Path to the local snapshot (required)")
	mergeCmd.PersistentFlags().StringVar(&mergeRemotePath, "remote", "", "Path to the remote snapshot (required)")
	_ = mergeCmd.MarkPersistentFlagRequired("local")
	_ = mergeCmd.MarkPersistentFlagRequired("remote")

	mergeCmd.AddCommand(mergeDayCmd, mergeProductsCmd)
	RootCmd.AddCommand(mergeCmd)
}

// newMerger builds a merger logging through the configured logger.
func newMerger() (*merge.Merger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return merge.New(merge.WithLogger(l)), nil
}

func readSides() (local, remote []byte, err error) {
	local, err = os.ReadFile(mergeLocalPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read local snapshot: %w", err)
	}
	remote, err = os.ReadFile(mergeRemotePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read remote snapshot: %w", err)
	}
	return local, remote, nil
}

func runMergeDay(cmd *cobra.Command, args []string) error {
	lb, rb, err := readSides()
	if err != nil {
		return err
	}
	local, err := merge.DecodeDayRecord(lb)
	if err != nil {
		return fmt.Errorf("invalid local snapshot: %w", err)
	}
	remote, err := merge.DecodeDayRecord(rb)
	if err != nil {
		return fmt.Errorf("invalid remote snapshot: %w", err)
	}
	if !local.Valid() || !remote.Valid() {
		return errors.New("both snapshots need a date")
	}
	if local.Date != remote.Date {
		return fmt.Errorf("snapshots are for different days: %s and %s", local.Date, remote.Date)
	}

	m, err := newMerger()
	if err != nil {
		return err
	}
	res := m.MergeDay(local, remote)
	if res.NoOp {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "no-op")
		return err
	}
	return printJSON(cmd.OutOrStdout(), res.Record)
}

func runMergeProducts(cmd *cobra.Command, args []string) error {
	lb, rb, err := readSides()
	if err != nil {
		return err
	}
	local, err := merge.DecodeProducts(lb)
	if err != nil {
		return fmt.Errorf("invalid local catalog: %w", err)
	}
	remote, err := merge.DecodeProducts(rb)
	if err != nil {
		return fmt.Errorf("invalid remote catalog: %w", err)
	}

	m, err := newMerger()
	if err != nil {
		return err
	}
	products, stats := m.MergeProducts(local, remote)
	if products == nil {
		products = []merge.Product{}
	}
	return printJSON(cmd.OutOrStdout(), catalog.MergeResponse{Products: products, Stats: stats})
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
