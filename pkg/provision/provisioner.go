// Package provision makes sure a local TPC-H dataset exists. When the target
// directory is missing it clones the data generator, builds it, runs it with
// the requested scale factor and moves the produced table files into place.
//
// Every step is fail fast: the first error ends the run and no later step is
// attempted. The temporary clone is removed on every exit path unless
// GeneratorConfig.KeepOnFailure asks to keep it after a failure.
package provision

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/timescale/tpch-provision/internal/utils"
	"github.com/timescale/tpch-provision/pkg/runner"
)

const (
	tempDirPattern = "tpch-dbgen-"
	sourceDirName  = "src"

	dataDirPerm = 0755

	errNoOutputFmt = "generator produced no files matching %q in %s"
)

// ErrNoConfig is the error message when a Provisioner has no Config.
const ErrNoConfig = "no Config provided"

// Result describes a finished run.
type Result struct {
	State    State
	DataPath string
	// Files are the names of the table files moved into DataPath, sorted.
	Files []string
	// TempDir is the temporary clone location, empty when nothing was
	// generated.
	TempDir string
}

// Provisioner runs the provisioning sequence for one Config.
type Provisioner struct {
	config *Config
	runner runner.Runner
	state  State
}

// New creates a Provisioner that delegates external commands to r.
func New(config *Config, r runner.Runner) *Provisioner {
	return &Provisioner{config: config, runner: r}
}

// State returns how far the last Run got.
func (p *Provisioner) State() State {
	return p.state
}

// Run validates the configuration and, when the target directory does not
// exist yet, generates the dataset into it.
func (p *Provisioner) Run(ctx context.Context) (*Result, error) {
	p.state = Unchecked
	if p.config == nil {
		p.state = Failed
		return nil, fmt.Errorf(ErrNoConfig)
	}
	if err := p.config.Validate(); err != nil {
		p.state = Failed
		return nil, err
	}

	exists, err := utils.DirExists(p.config.DataPath)
	if err != nil {
		p.state = Failed
		return nil, errors.Wrap(err, "cannot check data path")
	}
	if exists {
		log.Printf("info: TPCH dataset already exists at %s", p.config.DataPath)
		p.state = AlreadySatisfied
		return &Result{State: p.state, DataPath: p.config.DataPath}, nil
	}

	p.state = NeedsGeneration
	p.reportDiskSpace()

	res := &Result{DataPath: p.config.DataPath}
	if err := p.generate(ctx, res); err != nil {
		p.state = Failed
		res.State = p.state
		return res, err
	}

	p.state = Completed
	res.State = p.state
	log.Printf("info: wrote %d table files to %s", len(res.Files), p.config.DataPath)
	return res, nil
}

func (p *Provisioner) generate(ctx context.Context, res *Result) (err error) {
	g := p.config.Generator

	tmp, err := ioutil.TempDir(g.WorkDir, tempDirPattern)
	if err != nil {
		return errors.Wrap(err, "could not create temporary directory")
	}
	// the generator runs by path with the clone as working directory, so a
	// relative work dir would be resolved twice
	abs, err := filepath.Abs(tmp)
	if err != nil {
		os.RemoveAll(tmp)
		return errors.Wrap(err, "could not resolve temporary directory")
	}
	tmp = abs
	res.TempDir = tmp
	log.Printf("debug: using temporary directory %s", tmp)

	defer func() {
		if err != nil && g.KeepOnFailure {
			log.Printf("warning: keeping temporary directory %s", tmp)
			return
		}
		if rmErr := os.RemoveAll(tmp); rmErr != nil {
			if err == nil {
				err = &StepError{Step: StepCleanup, Err: rmErr}
				return
			}
			log.Printf("error: could not remove temporary directory %s: %v", tmp, rmErr)
		}
	}()

	src := filepath.Join(tmp, sourceDirName)
	if err := p.fetch(ctx, src); err != nil {
		return err
	}
	if err := p.build(ctx, src); err != nil {
		return err
	}
	if err := p.runGenerator(ctx, src); err != nil {
		return err
	}
	res.Files, err = p.materialize(src)
	return err
}

func (p *Provisioner) fetch(ctx context.Context, src string) error {
	g := p.config.Generator
	args := []string{"clone"}
	if g.CloneDepth > 0 {
		args = append(args, "--depth", fmt.Sprint(g.CloneDepth))
	}
	args = append(args, g.RepoURL, src)

	log.Printf("info: cloning %s", g.RepoURL)
	if err := p.runner.Run(ctx, runner.Command{Name: "git", Args: args}); err != nil {
		return &StepError{Step: StepFetch, Err: err}
	}
	return nil
}

func (p *Provisioner) build(ctx context.Context, src string) error {
	build := p.config.Generator.BuildCommand
	cmd := runner.Command{Name: build[0], Args: build[1:], Dir: src}

	log.Printf("info: building generator with %s", cmd)
	if err := p.runner.Run(ctx, cmd); err != nil {
		return &StepError{Step: StepBuild, Err: err}
	}
	return nil
}

func (p *Provisioner) runGenerator(ctx context.Context, src string) error {
	cmd := runner.Command{
		Name: filepath.Join(src, p.config.Generator.Binary),
		Args: []string{"-f", "-s", p.config.ScaleFactor},
		Dir:  src,
	}

	log.Printf("info: generating TPCH data with scale factor %s", p.config.ScaleFactor)
	if err := p.runner.Run(ctx, cmd); err != nil {
		return &StepError{Step: StepGenerate, Err: err}
	}
	return nil
}

// materialize moves the generator output from src into the data path. The
// data path is only created once there is something to put into it.
func (p *Provisioner) materialize(src string) ([]string, error) {
	pattern := p.config.Generator.OutputPattern
	matches, err := filepath.Glob(filepath.Join(src, pattern))
	if err != nil {
		return nil, &StepError{Step: StepMaterialize, Err: err}
	}

	var outputs []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return nil, &StepError{Step: StepMaterialize, Err: err}
		}
		if info.Mode().IsRegular() {
			outputs = append(outputs, m)
		}
	}
	if len(outputs) == 0 {
		return nil, &StepError{Step: StepMaterialize, Err: fmt.Errorf(errNoOutputFmt, pattern, src)}
	}

	if err := os.MkdirAll(p.config.DataPath, dataDirPerm); err != nil {
		return nil, &StepError{Step: StepMaterialize, Err: err}
	}

	files := make([]string, 0, len(outputs))
	for _, from := range outputs {
		name := filepath.Base(from)
		if err := utils.MoveFile(from, filepath.Join(p.config.DataPath, name)); err != nil {
			return files, &StepError{Step: StepMaterialize, Err: errors.Wrapf(err, "could not move %s", name)}
		}
		log.Printf("debug: moved %s", name)
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// reportDiskSpace logs the free space on the filesystem the dataset will be
// written to. Failure to determine it is not an error.
func (p *Provisioner) reportDiskSpace() {
	usage, err := utils.DiskUsage(p.config.DataPath)
	if err != nil {
		log.Printf("debug: could not determine free space for %s: %v", p.config.DataPath, err)
		return
	}
	log.Printf("info: %s free on %s", utils.HumanBytes(usage.Free), usage.Path)
}
