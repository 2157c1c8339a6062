// Package driver loads and executes calc.yml runfiles, small YAML documents
// describing a list of sequence computations to perform.
package driver

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"seqcalc/seqcalc-go/pkg/sequence"
)

// RunfileName is the file name searched for by FindRunfile.
const RunfileName = "calc.yml"

// Runfile represents the parsed contents of calc.yml.
type Runfile struct {
	Path string
	Name string
	Jobs []Job
}

// Job describes a single computation from the runfile.
type Job struct {
	Op Op
	N  int
}

// Op enumerates supported computations.
type Op string

const (
	OpFactorial Op = "factorial"
	OpFibonacci Op = "fibonacci"
)

// IsValid reports whether the op is recognised.
func (o Op) IsValid() bool {
	switch o {
	case OpFactorial, OpFibonacci:
		return true
	default:
		return false
	}
}

// ValidationError aggregates runfile validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "runfile: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("runfile validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadRunfile parses calc.yml from disk, returning a validated runfile.
func LoadRunfile(path string) (*Runfile, error) {
	if path == "" {
		return nil, fmt.Errorf("runfile: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("runfile: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("runfile: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw runfileFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("runfile: %s is empty", absPath)
		}
		return nil, fmt.Errorf("runfile: parse %s: %w", absPath, err)
	}

	runfile := raw.toRunfile(absPath)
	if err := raw.validate(); err != nil {
		return nil, err
	}
	return runfile, nil
}

// ErrRunfileNotFound reports that no calc.yml exists in the searched
// directories.
var ErrRunfileNotFound = errors.New("calc.yml not found")

// FindRunfile walks from start upwards looking for calc.yml and returns the
// first match.
func FindRunfile(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, RunfileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no calc.yml found from %s upwards: %w", origin, ErrRunfileNotFound)
		}
		dir = parent
	}
}

// Execute runs every job in order, writing one result line per job to w.
// Execution stops at the first job that fails.
func (r *Runfile) Execute(w io.Writer) error {
	for i, job := range r.Jobs {
		line, err := job.Run()
		if err != nil {
			return fmt.Errorf("runfile: job %d (%s): %w", i, job.Op, err)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// Run performs the job's computation and renders its result line.
func (j Job) Run() (string, error) {
	switch j.Op {
	case OpFactorial:
		value, err := sequence.Factorial(j.N)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Factorial of %d: %s", j.N, value), nil
	case OpFibonacci:
		terms, err := sequence.Fibonacci(j.N)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("First %d Fibonacci numbers: %s", j.N, formatTerms(terms)), nil
	default:
		return "", fmt.Errorf("unsupported op %q", j.Op)
	}
}

func formatTerms(terms []*big.Int) string {
	parts := make([]string, len(terms))
	for i, term := range terms {
		parts[i] = term.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type runfileFile struct {
	Name string    `yaml:"name"`
	Jobs []jobYAML `yaml:"jobs"`
}

type jobYAML struct {
	Op string `yaml:"op"`
	N  *int   `yaml:"n"`
}

func (rf runfileFile) toRunfile(path string) *Runfile {
	result := &Runfile{
		Path: path,
		Name: strings.TrimSpace(rf.Name),
		Jobs: make([]Job, 0, len(rf.Jobs)),
	}
	for _, job := range rf.Jobs {
		spec := Job{Op: Op(strings.TrimSpace(job.Op))}
		if job.N != nil {
			spec.N = *job.N
		}
		result.Jobs = append(result.Jobs, spec)
	}
	return result
}

func (rf runfileFile) validate() error {
	var errs ValidationError
	if strings.TrimSpace(rf.Name) == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if len(rf.Jobs) == 0 {
		errs.Issues = append(errs.Issues, "jobs must list at least one computation")
	}
	for i, job := range rf.Jobs {
		op := Op(strings.TrimSpace(job.Op))
		switch {
		case op == "":
			errs.Issues = append(errs.Issues, fmt.Sprintf("jobs[%d] missing op", i))
		case !op.IsValid():
			errs.Issues = append(errs.Issues, fmt.Sprintf("jobs[%d] has unsupported op %q", i, job.Op))
		}
		if job.N == nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("jobs[%d] missing n", i))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
