package sort_bench

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	uuid "github.com/nu7hatch/gouuid"
	"github.com/sirupsen/logrus"
	gorm "gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options"`
}

type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

// Run is one invocation of the benchmark driver.
type Run struct {
	ID         uint
	UUID       string `gorm:"uniqueIndex"`
	Element    string
	Seed       int64
	Repeats    int
	StartedAt  time.Time
	FinishedAt *time.Time
	Results    []Result
}

// Result is a stored Row.
type Result struct {
	ID           uint
	RunID        uint `gorm:"index"`
	Algorithm    string
	Distribution string
	Size         int
	AverageMs    float64
	StdDevMs     float64
	Repeats      int
	Failures     int
}

// Row converts a stored result back into a driver row.
func (r *Result) Row() *Row {
	return &Row{
		Algorithm:    r.Algorithm,
		Distribution: r.Distribution,
		Size:         r.Size,
		AverageMs:    r.AverageMs,
		StdDevMs:     r.StdDevMs,
		Repeats:      r.Repeats,
		Failures:     r.Failures,
	}
}

// DSN builds the sqlite connection string from the config.
func (c *PersistenceConfig) DSN() string {
	params := make([]string, 0, len(c.SQLitePragmas)+len(c.SQLiteOptions))
	for _, prag := range c.SQLitePragmas {
		params = append(params, fmt.Sprintf("_pragma=%s", prag))
	}
	params = append(params, c.SQLiteOptions...)

	var path strings.Builder
	path.WriteString(filepath.Join(c.Path, c.Name))
	if len(params) > 0 {
		path.WriteRune('?')
		path.WriteString(strings.Join(params, "&"))
	}
	return path.String()
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}

	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}

	db, err := gorm.Open(sqlite.Open(config.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", config.DSN(), err)
	}

	db = db.Session(&gorm.Session{PrepareStmt: true, CreateBatchSize: 1000})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Persistence) initialize() error {
	if err := p.DB.AutoMigrate(&Run{}, &Result{}); err != nil {
		return fmt.Errorf("failed to migrate result schema: %w", err)
	}
	return nil
}

func (p *Persistence) Shutdown() error {
	sqldb, err := p.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to retrieve raw DB: %w", err)
	}
	return sqldb.Close()
}

// CreateRun stores a new run with a fresh UUID.
func (p *Persistence) CreateRun(element string, seed int64, repeats int) (*Run, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}
	run := &Run{
		UUID:      id.String(),
		Element:   element,
		Seed:      seed,
		Repeats:   repeats,
		StartedAt: time.Now(),
	}
	if result := p.DB.Create(run); result.Error != nil {
		return nil, fmt.Errorf("Failed to call gorm.Create(): %w", result.Error)
	}
	return run, nil
}

func (p *Persistence) SaveResult(runID uint, row *Row) error {
	res := &Result{
		RunID:        runID,
		Algorithm:    row.Algorithm,
		Distribution: row.Distribution,
		Size:         row.Size,
		AverageMs:    row.AverageMs,
		StdDevMs:     row.StdDevMs,
		Repeats:      row.Repeats,
		Failures:     row.Failures,
	}
	if result := p.DB.Create(res); result.Error != nil {
		return fmt.Errorf("failed to save result for run %d: %w", runID, result.Error)
	}
	return nil
}

func (p *Persistence) FinishRun(run *Run) error {
	now := time.Now()
	run.FinishedAt = &now
	if result := p.DB.Model(run).Update("finished_at", now); result.Error != nil {
		return fmt.Errorf("failed to finish run %d: %w", run.ID, result.Error)
	}
	return nil
}

// LoadRun returns the run with its results in insertion order.
func (p *Persistence) LoadRun(id uint) (*Run, error) {
	run := &Run{}
	result := p.DB.Preload("Results", func(db *gorm.DB) *gorm.DB {
		return db.Order("results.id")
	}).First(run, id)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, result.Error)
	}
	return run, nil
}

// LatestRun returns the most recently started run.
func (p *Persistence) LatestRun() (*Run, error) {
	run := &Run{}
	if result := p.DB.Order("id desc").First(run); result.Error != nil {
		return nil, fmt.Errorf("failed to load latest run: %w", result.Error)
	}
	return p.LoadRun(run.ID)
}

// Fastest is the quickest algorithm for one distribution and size.
type Fastest struct {
	Distribution string
	Size         int
	Algorithm    string
	AverageMs    float64
}

// QueryFastest returns, for every distribution and size of a run, the
// algorithm with the lowest average. Ties return every tied algorithm.
func (p *Persistence) QueryFastest(runID uint) ([]Fastest, error) {
	db, err := p.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve raw DB: %w", err)
	}

	rows, err := db.Query(`SELECT r.distribution, r.size, r.algorithm, r.average_ms
		FROM results r
		JOIN (
			SELECT distribution, size, MIN(average_ms) AS best
			FROM results
			WHERE run_id = ?
			GROUP BY distribution, size
		) b ON r.distribution = b.distribution AND r.size = b.size AND r.average_ms = b.best
		WHERE r.run_id = ?
		ORDER BY r.distribution, r.size, r.algorithm`, runID, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fastest results: %w", err)
	}
	defer rows.Close()

	var out []Fastest
	for rows.Next() {
		var f Fastest
		if err := rows.Scan(&f.Distribution, &f.Size, &f.Algorithm, &f.AverageMs); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// StoreSink persists rows of one run as they complete.
type StoreSink struct {
	Persist *Persistence
	Run     *Run
}

// NewStoreSink creates the run record rows will be attached to.
func NewStoreSink(p *Persistence, element string, seed int64, repeats int) (*StoreSink, error) {
	run, err := p.CreateRun(element, seed, repeats)
	if err != nil {
		return nil, err
	}
	logrus.WithField("run", run.UUID).Infof("Recording results as run %d", run.ID)
	return &StoreSink{Persist: p, Run: run}, nil
}

func (s *StoreSink) Append(row *Row) error {
	return s.Persist.SaveResult(s.Run.ID, row)
}

func (s *StoreSink) Close() error {
	return s.Persist.FinishRun(s.Run)
}
