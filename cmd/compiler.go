package cmd

import (
	"ctfe/ast"
	"ctfe/common"
	"ctfe/config"
	"ctfe/report"
	"ctfe/resolve"
	"ctfe/sema"
	"ctfe/util"
	"os"
	"path/filepath"
)

// Compiler represents the global state of a single evaluation run.
type Compiler struct {
	// rootPath is the path to the source file or directory being evaluated.
	rootPath string

	// cfgPath is the path to the configuration file.  It is empty if no
	// configuration file was given explicitly.
	cfgPath string

	// cfg is the loaded target configuration.
	cfg *config.Config

	// files is the list of parsed source files in the order they were found.
	files []*ast.File

	// sema is the semantic context all the files are declared in.
	sema *sema.Sema
}

// NewCompiler creates a new compiler.
func NewCompiler(rootPath, cfgPath string) *Compiler {
	return &Compiler{
		rootPath: rootPath,
		cfgPath:  cfgPath,
	}
}

// Analyze loads the configuration and source files, then resolves and
// evaluates all their declarations.  It returns whether analysis succeeded.
func (c *Compiler) Analyze() bool {
	c.loadConfig()
	c.sema = sema.NewSema(c.cfg.PointerSize)

	srcs := c.loadSources()
	if !c.parseSources(srcs) {
		return false
	}

	// merge all the declarations into one context and evaluate them
	r := resolve.NewResolver(c.sema)
	for _, file := range c.files {
		r.AddFile(file)
	}

	r.Resolve()
	c.sema.Flush()

	return !report.AnyErrors()
}

// -----------------------------------------------------------------------------

// loadConfig loads the target configuration.  If no configuration file was
// given, the configuration file next to the sources is used if it exists.
func (c *Compiler) loadConfig() {
	if c.cfgPath == "" {
		dir := c.rootPath
		if finfo, err := os.Stat(dir); err == nil && !finfo.IsDir() {
			dir = filepath.Dir(dir)
		}

		candidate := filepath.Join(dir, common.ConfigFileName)
		if _, err := os.Stat(candidate); err != nil {
			c.cfg = config.Default()
			return
		}

		c.cfgPath = candidate
	}

	cfg, err := config.Load(c.cfgPath)
	if err != nil {
		report.ReportFatal("%s: %s", c.cfgPath, err)
	}

	for _, warning := range cfg.Warnings {
		report.ReportConfigWarning(c.cfgPath, "%s", warning)
	}

	c.cfg = cfg
}

// loadSources reads the source files to evaluate.  If the root path is a
// directory, every source file directly inside it is read in name order.
func (c *Compiler) loadSources() []*report.Source {
	finfo, err := os.Stat(c.rootPath)
	if err != nil {
		report.ReportFatal("unable to open `%s`: %s", c.rootPath, err)
	}

	var paths []string
	if finfo.IsDir() {
		entries, err := os.ReadDir(c.rootPath)
		if err != nil {
			report.ReportFatal("failed to read directory `%s`: %s", c.rootPath, err)
		}

		// We only want to try to load source files.
		entries = util.Filter(entries, func(entry os.DirEntry) bool {
			return !entry.IsDir() && filepath.Ext(entry.Name()) == common.SourceFileExt
		})

		paths = util.Map(entries, func(entry os.DirEntry) string {
			return filepath.Join(c.rootPath, entry.Name())
		})

		if len(paths) == 0 {
			report.ReportFatal("no source files found in `%s`", c.rootPath)
		}
	} else {
		paths = []string{c.rootPath}
	}

	return util.Map(paths, func(path string) *report.Source {
		buff, err := os.ReadFile(path)
		if err != nil {
			report.ReportFatal("unable to read `%s`: %s", path, err)
		}

		return report.NewSource(path, string(buff))
	})
}
