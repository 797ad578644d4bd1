package sort_bench

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	cp "github.com/jinzhu/copier"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"nickandperla.net/sort_bench/sorter"
)

const (
	ElementInt   = "int"
	ElementFloat = "float"
)

var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrUnknownElement = errors.New("unknown element type")
)

// ToolConfig is the sortbench configuration file.
type ToolConfig struct {
	Element     string             `toml:"element"`
	Seed        int64              `toml:"seed"`
	Benchmark   *BenchmarkConfig   `toml:"benchmark"`
	Persistence *PersistenceConfig `toml:"persistence"`
	Log         *LogConfig         `toml:"log"`
}

// SkipRule leaves out sizes above MaxSize for an algorithm. Algorithm is a
// selector key ("insertion", "quick:left") or a bare kind matching every
// variant ("quick").
type SkipRule struct {
	Algorithm string `toml:"algorithm"`
	MaxSize   int    `toml:"max_size"`
}

type BenchmarkConfig struct {
	Algorithms    []string       `toml:"algorithms"`
	Distributions []Distribution `toml:"distributions"`
	Sizes         []int          `toml:"sizes"`
	Repeats       int            `toml:"repeats"`
	Skip          []SkipRule     `toml:"skip"`
	Output        string         `toml:"output"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultBenchmarkConfig is the performance test of the interactive menu:
// the four standard algorithms, five distributions, sizes from 10k to 200k
// and 100 repeats, with insertion sort left out above 50k elements.
func DefaultBenchmarkConfig() *BenchmarkConfig {
	return &BenchmarkConfig{
		Algorithms: lo.Map(sorter.Standard(), func(a sorter.Algorithm, _ int) string {
			return a.Key()
		}),
		Distributions: DefaultDistributions(),
		Sizes:         []int{10000, 20000, 50000, 80000, 100000, 150000, 200000},
		Repeats:       100,
		Skip:          []SkipRule{{Algorithm: "insertion", MaxSize: 50000}},
		Output:        "performance_results.csv",
	}
}

func DefaultToolConfig() *ToolConfig {
	return &ToolConfig{
		Element:   ElementInt,
		Benchmark: DefaultBenchmarkConfig(),
		Log:       &LogConfig{Level: "info", Format: "text"},
	}
}

// LoadToolConfig decodes path and fills every key the file leaves out with
// its default. An explicitly empty skip list disables the default rule.
func LoadToolConfig(path string) (*ToolConfig, error) {
	config := &ToolConfig{}
	md, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logrus.Warnf("Ignoring unknown config keys in %s: %v", path, undecoded)
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ToolConfig) applyDefaults() {
	defaults := DefaultToolConfig()
	if c.Element == "" {
		c.Element = defaults.Element
	}
	if c.Log == nil {
		c.Log = defaults.Log
	}
	if c.Benchmark == nil {
		c.Benchmark = defaults.Benchmark
		return
	}
	b, db := c.Benchmark, defaults.Benchmark
	if len(b.Algorithms) == 0 {
		b.Algorithms = db.Algorithms
	}
	if len(b.Distributions) == 0 {
		b.Distributions = db.Distributions
	}
	if len(b.Sizes) == 0 {
		b.Sizes = db.Sizes
	}
	if b.Repeats == 0 {
		b.Repeats = db.Repeats
	}
	if b.Skip == nil {
		b.Skip = db.Skip
	}
	if b.Output == "" {
		b.Output = db.Output
	}
}

// Clone returns a deep copy so callers can apply overrides without touching
// the loaded config.
func (c *ToolConfig) Clone() (*ToolConfig, error) {
	clone := &ToolConfig{}
	if err := cp.CopyWithOption(clone, c, cp.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to copy config: %w", err)
	}
	return clone, nil
}

func (c *ToolConfig) Validate() error {
	if err := ValidateElement(c.Element); err != nil {
		return err
	}
	if c.Benchmark == nil {
		return fmt.Errorf("%w: missing [benchmark] section", ErrInvalidConfig)
	}
	return c.Benchmark.Validate()
}

func ValidateElement(element string) error {
	if element != ElementInt && element != ElementFloat {
		return fmt.Errorf("%w %q (want %q or %q)", ErrUnknownElement, element, ElementInt, ElementFloat)
	}
	return nil
}

// Validate rejects anything the generators or algorithms would not accept,
// so a run never starts with a bad matrix.
func (c *BenchmarkConfig) Validate() error {
	if c.Repeats < 1 {
		return fmt.Errorf("%w: repeats must be at least 1, got %d", ErrInvalidConfig, c.Repeats)
	}
	if len(c.Algorithms) == 0 || len(c.Distributions) == 0 || len(c.Sizes) == 0 {
		return fmt.Errorf("%w: algorithms, distributions and sizes must not be empty", ErrInvalidConfig)
	}
	if negative := lo.Filter(c.Sizes, func(s int, _ int) bool { return s < 0 }); len(negative) > 0 {
		return fmt.Errorf("%w: %w: %v", ErrInvalidConfig, ErrInvalidSize, negative)
	}
	if _, err := c.ParsedAlgorithms(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, d := range c.Distributions {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	for _, rule := range c.Skip {
		if _, err := sorter.ParseAlgorithm(rule.Algorithm); err != nil {
			return fmt.Errorf("%w: skip rule: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

func (c *BenchmarkConfig) ParsedAlgorithms() ([]sorter.Algorithm, error) {
	out := make([]sorter.Algorithm, 0, len(c.Algorithms))
	for _, s := range c.Algorithms {
		alg, err := sorter.ParseAlgorithm(s)
		if err != nil {
			return nil, err
		}
		out = append(out, alg)
	}
	return out, nil
}

// Skipped reports whether a skip rule leaves size out for alg.
func (c *BenchmarkConfig) Skipped(alg sorter.Algorithm, size int) bool {
	key := alg.Key()
	for _, rule := range c.Skip {
		r := strings.ToLower(strings.TrimSpace(rule.Algorithm))
		if (r == key || strings.HasPrefix(key, r+":")) && size > rule.MaxSize {
			return true
		}
	}
	return false
}

// Apply configures the standard logrus logger.
func (l *LogConfig) Apply() error {
	if l == nil {
		return nil
	}
	if l.Level != "" {
		level, err := logrus.ParseLevel(l.Level)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		logrus.SetLevel(level)
	}
	switch l.Format {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.000"})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, l.Format)
	}
	logrus.SetOutput(os.Stderr)
	return nil
}
