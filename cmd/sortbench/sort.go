package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	sb "nickandperla.net/sort_bench"
	"nickandperla.net/sort_bench/sorter"
)

var sortFlags struct {
	algorithm string
	out       string
}

var sortCmd = &cobra.Command{
	Use:   "sort FILE",
	Short: "Sort an array file and report the time taken",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, err := sorter.ParseAlgorithm(sortFlags.algorithm)
		if err != nil {
			return err
		}
		src := sb.NewRandom(toolConfig.Seed)
		if toolConfig.Element == sb.ElementFloat {
			return sortFile(cmd, sb.NewSession[float64](src), args[0], alg)
		}
		return sortFile(cmd, sb.NewSession[int](src), args[0], alg)
	},
}

func init() {
	flags := sortCmd.Flags()
	flags.StringVarP(&sortFlags.algorithm, "algorithm", "a", "quick:middle", "Algorithm, e.g. insertion, heap, shell:hibbard, quick:random")
	flags.StringVarP(&sortFlags.out, "out", "o", "", "Write the sorted array to this file")
}

func sortFile[T sb.Value](cmd *cobra.Command, s *sb.Session[T], path string, alg sorter.Algorithm) error {
	if err := s.Load(path); err != nil {
		return err
	}
	report, err := s.Sort(alg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s on %d elements\n", alg.Name(), report.Size)
	fmt.Fprintf(out, "Sorting time: %.4f ms\n", float64(report.Elapsed)/float64(time.Millisecond))
	if !report.Verified {
		return fmt.Errorf("%w: %s", sb.ErrVerification, alg.Name())
	}
	fmt.Fprintln(out, "The array has been sorted correctly.")

	if sortFlags.out != "" {
		return s.Save(sortFlags.out, true)
	}
	return nil
}
