package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/netrand/netrand"
)

var (
	flagSource  string
	flagMin     uint64
	flagMax     uint64
	flagCount   int
	flagTimeout time.Duration

	rootCmd = &cobra.Command{
		Use:          "netrand",
		Short:        "Print random integers drawn from remote randomness providers",
		SilenceUsage: true,
		RunE:         run,
	}
)

func init() {
	rootCmd.Flags().StringVar(&flagSource, "source", netrand.SourceRandomOrg, "randomness provider")
	rootCmd.Flags().Uint64Var(&flagMin, "min", 0, "smallest value to produce")
	rootCmd.Flags().Uint64Var(&flagMax, "max", 255, "largest value to produce")
	rootCmd.Flags().IntVar(&flagCount, "count", 1, "how many values to produce")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "overall deadline")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "sources",
		Short: "List the available randomness providers",
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range netrand.DefaultPoolSet().Sources() {
				fmt.Println(s)
			}
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stderr, "netrand %s %s\n", version, commit)
		},
	})
}

func run(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	pools := netrand.NewDefaultPoolSet(netrand.Logger(func(msg string, args ...interface{}) {
		logger.Warn().Msgf(msg, args...)
	}))
	defer pools.Close()

	gen, err := netrand.New(flagSource,
		netrand.Min(flagMin),
		netrand.Max(flagMax),
		netrand.WithPoolSet(pools),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	values, err := gen.Get(ctx, flagCount)
	if err != nil {
		return err
	}
	for _, v := range values {
		fmt.Println(v)
	}
	return nil
}
