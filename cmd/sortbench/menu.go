package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sb "nickandperla.net/sort_bench"
	"nickandperla.net/sort_bench/sorter"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu (default)",
	Args:  cobra.NoArgs,
	RunE:  runMenu,
}

const menuText = `
--- MENU ---
1. Load array from file
2. Generate random array
3. Generate sorted array
4. Generate partially sorted array
5. Display array
6. Sort array (choose algorithm)
7. Display sorted array
8. Save array to file
9. Run performance tests
0. Exit
`

func runMenu(cmd *cobra.Command, _ []string) error {
	prompt := newPrompter()
	defer prompt.Close()

	ctx, cancel := interruptContext()
	defer cancel()

	out := cmd.OutOrStdout()
	element := toolConfig.Element
	if !cmd.Flags().Changed("type") {
		var err error
		if element, err = chooseElement(prompt, out); err != nil {
			return ignoreEOF(err)
		}
	}

	src := sb.NewRandom(toolConfig.Seed)
	if element == sb.ElementFloat {
		return ignoreEOF(newMenu[float64](ctx, src, prompt, out, toolConfig).run())
	}
	return ignoreEOF(newMenu[int](ctx, src, prompt, out, toolConfig).run())
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// chooseElement asks for the element type. Anything but 2 selects int.
func chooseElement(p Prompter, out io.Writer) (string, error) {
	fmt.Fprint(out, "Choose data type:\n1. Integer (int)\n2. Floating point (float)\n")
	line, err := p.Prompt("Choose an option: ")
	if err != nil {
		return "", err
	}
	switch strings.TrimSpace(line) {
	case "1":
		return sb.ElementInt, nil
	case "2":
		return sb.ElementFloat, nil
	}
	fmt.Fprintln(out, "Invalid choice! Defaulting to integer type.")
	return sb.ElementInt, nil
}

// menu is the interactive loop over one Session.
type menu[T sb.Value] struct {
	ctx     context.Context
	session *sb.Session[T]
	prompt  Prompter
	out     io.Writer
	config  *sb.ToolConfig
}

func newMenu[T sb.Value](ctx context.Context, src *sb.Random, p Prompter, out io.Writer, config *sb.ToolConfig) *menu[T] {
	return &menu[T]{
		ctx:     ctx,
		session: sb.NewSession[T](src),
		prompt:  p,
		out:     out,
		config:  config,
	}
}

// run dispatches menu options until 0 is chosen or input ends.
func (m *menu[T]) run() error {
	for {
		fmt.Fprint(m.out, menuText)
		choice, err := m.askInt("Choose an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		case 1:
			err = m.load()
		case 2:
			err = m.generateRandom()
		case 3:
			err = m.generateSorted()
		case 4:
			err = m.generatePartial()
		case 5:
			m.display("Array:", m.session.Array)
		case 6:
			err = m.sort()
		case 7:
			m.display("Sorted array:", m.session.Sorted)
		case 8:
			err = m.save()
		case 9:
			err = m.performanceTest()
		default:
			fmt.Fprintln(m.out, "Invalid option, please try again.")
		}

		if errors.Is(err, io.EOF) {
			return err
		}
		if err != nil {
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
	}
}

func (m *menu[T]) askLine(label string) (string, error) {
	line, err := m.prompt.Prompt(label)
	return strings.TrimSpace(line), err
}

// askInt repeats the prompt until a whole number is entered.
func (m *menu[T]) askInt(label string) (int, error) {
	for {
		line, err := m.askLine(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(m.out, "Invalid number, please try again.")
	}
}

func (m *menu[T]) askFloat(label string) (float64, error) {
	for {
		line, err := m.askLine(label)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(line, 64)
		if err == nil {
			return f, nil
		}
		fmt.Fprintln(m.out, "Invalid number, please try again.")
	}
}

func (m *menu[T]) load() error {
	name, err := m.askLine("Enter file name: ")
	if err != nil {
		return err
	}
	if err := m.session.Load(name); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Array loaded from file: %s\n", name)
	return nil
}

func (m *menu[T]) generateRandom() error {
	size, err := m.askInt("Enter array size: ")
	if err != nil {
		return err
	}
	if err := m.session.GenerateRandom(size); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Generated random array of size %d.\n", size)
	return nil
}

func (m *menu[T]) generateSorted() error {
	size, err := m.askInt("Enter array size: ")
	if err != nil {
		return err
	}
	order, err := m.askInt("Sorting order (1 - ascending, 2 - descending): ")
	if err != nil {
		return err
	}
	if err := m.session.GenerateSorted(size, order != 2); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Generated sorted array of size %d.\n", size)
	return nil
}

func (m *menu[T]) generatePartial() error {
	size, err := m.askInt("Enter array size: ")
	if err != nil {
		return err
	}
	fraction, err := m.askFloat("Percentage of sorted elements (0.0-1.0): ")
	if err != nil {
		return err
	}
	if err := m.session.GeneratePartiallySorted(size, fraction); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Generated partially sorted array of size %d.\n", size)
	return nil
}

// display prints ten right aligned values per line.
func (m *menu[T]) display(title string, data []T) {
	fmt.Fprintln(m.out, title)
	for i, v := range data {
		fmt.Fprintf(m.out, "%8s ", sb.FormatValue(v))
		if (i+1)%10 == 0 {
			fmt.Fprintln(m.out)
		}
	}
	fmt.Fprintln(m.out)
}

var (
	menuKinds  = []sorter.Kind{sorter.InsertionSort, sorter.HeapSort, sorter.ShellSort, sorter.QuickSort}
	menuGaps   = []sorter.GapVariant{sorter.Knuth, sorter.Hibbard}
	menuPivots = []sorter.PivotVariant{sorter.Left, sorter.Right, sorter.Middle, sorter.Random}
)

// pick returns the 1-based choice from options.
func pick[V any](options []V, choice int) (V, bool) {
	if choice < 1 || choice > len(options) {
		var zero V
		return zero, false
	}
	return options[choice-1], true
}

// chooseAlgorithm asks for an algorithm and its variant. ok is false when a
// choice is out of range.
func (m *menu[T]) chooseAlgorithm() (alg sorter.Algorithm, ok bool, err error) {
	fmt.Fprint(m.out, "Choose sorting algorithm:\n1. Insertion Sort\n2. Heap Sort\n3. Shell Sort\n4. Quick Sort\n")
	choice, err := m.askInt("Choose an option: ")
	if err != nil {
		return alg, false, err
	}
	if alg.Kind, ok = pick(menuKinds, choice); !ok {
		return alg, false, nil
	}

	switch alg.Kind {
	case sorter.ShellSort:
		fmt.Fprint(m.out, "Choose gap sequence:\n1. Knuth sequence\n2. Hibbard sequence\n")
		if choice, err = m.askInt("Choose an option: "); err != nil {
			return alg, false, err
		}
		alg.Gap, ok = pick(menuGaps, choice)
	case sorter.QuickSort:
		fmt.Fprint(m.out, "Choose pivot type:\n1. Left\n2. Right\n3. Middle\n4. Random\n")
		if choice, err = m.askInt("Choose an option: "); err != nil {
			return alg, false, err
		}
		alg.Pivot, ok = pick(menuPivots, choice)
	}
	return alg, ok, nil
}

func (m *menu[T]) sort() error {
	alg, ok, err := m.chooseAlgorithm()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(m.out, "Wrong algorithm!")
		return nil
	}

	report, err := m.session.Sort(alg)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Sorting time: %.4f ms\n", float64(report.Elapsed)/float64(time.Millisecond))
	if report.Verified {
		fmt.Fprintln(m.out, "The array has been sorted correctly.")
	} else {
		fmt.Fprintln(m.out, "Error: The array is not sorted.")
	}
	return nil
}

func (m *menu[T]) save() error {
	fmt.Fprint(m.out, "Choose which array to save:\n1. Original array\n2. Sorted array\n")
	which, err := m.askInt("Choose an option: ")
	if err != nil {
		return err
	}
	name, err := m.askLine("Enter filename to save to: ")
	if err != nil {
		return err
	}
	if err := m.session.Save(name, which == 2); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Array saved to file: %s\n", name)
	return nil
}

func (m *menu[T]) performanceTest() error {
	fmt.Fprintln(m.out, "\n--- PERFORMANCE TEST ---")
	sinks, cleanup, err := openSinks(m.config, false)
	if err != nil {
		return err
	}
	defer cleanup()

	_, runErr := m.session.RunPerformanceTest(m.ctx, m.config.Benchmark, sinks)
	if err := sinks.Close(); err != nil {
		logrus.Errorf("Failed to close result sinks: %v", err)
	}

	var verr *sb.VerificationError
	if runErr != nil && !errors.As(runErr, &verr) {
		return runErr
	}
	if verr != nil {
		fmt.Fprintf(m.out, "Warning: %v\n", verr)
	}
	fmt.Fprintf(m.out, "\nResults have been saved to '%s'\n", m.config.Benchmark.Output)
	return nil
}
