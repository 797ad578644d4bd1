package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sb "nickandperla.net/sort_bench"
)

var generateFlags struct {
	size int
	dist string
	out  string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a generated array to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dist, err := sb.ParseDistribution(generateFlags.dist)
		if err != nil {
			return err
		}
		src := sb.NewRandom(toolConfig.Seed)
		if toolConfig.Element == sb.ElementFloat {
			return generateFile[float64](src, dist)
		}
		return generateFile[int](src, dist)
	},
}

func init() {
	flags := generateCmd.Flags()
	flags.IntVar(&generateFlags.size, "size", 1000, "Number of elements")
	flags.StringVar(&generateFlags.dist, "dist", string(sb.RandomData), "Distribution: random, ascending, descending or partial:<fraction>")
	flags.StringVarP(&generateFlags.out, "out", "o", "array.txt", "Output file")
}

func generateFile[T sb.Value](src *sb.Random, dist sb.Distribution) error {
	data, err := sb.NewGenerator[T](src).Generate(dist, generateFlags.size)
	if err != nil {
		return err
	}
	if err := sb.SaveArrayFile(generateFlags.out, data); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"distribution": dist.Name(),
		"size":         len(data),
		"seed":         src.Seed(),
	}).Infof("Array saved to file: %s", generateFlags.out)
	return nil
}
