package cmd

import (
	"ctfe/common"
	"ctfe/report"
	"ctfe/syntax"
	"os"

	"github.com/ComedicChimera/olive"
)

// Main is the main entry point for the `ctfe` CLI utility.  It returns the
// exit code of the process.
func Main() int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("ctfe", "ctfe is a tool for evaluating compile-time constants", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	lexCmd := cli.AddSubcommand("lex", "tokenize a source file and print its tokens", true)
	lexCmd.AddPrimaryArg("path", "the path to the source file", true)

	evalCmd := cli.AddSubcommand("eval", "evaluate the constants of a source file or directory", true)
	evalCmd.AddPrimaryArg("path", "the path to the source file or directory", true)
	evalCmd.AddStringArg("config", "c", "the path to the target configuration file", false)
	emitArg := evalCmd.AddSelectorArg("emit", "e", "the output format", false, []string{"values", "llvm", "debug"})
	emitArg.SetDefaultValue("values")

	cli.AddSubcommand("version", "print the ctfe version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal("%s", err)
	}

	// initialize the reporter: all diagnostics go to stderr so that the
	// results written to stdout can be piped
	logLevel, _ := report.LogLevelFromName(result.Arguments["loglevel"].(string))
	report.InitReporter(logLevel)
	report.SetOutput(os.Stderr)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "lex":
		return execLexCommand(subResult)
	case "eval":
		return execEvalCommand(subResult)
	case "version":
		report.DisplayInfoMessage("ctfe version", common.Version)
	}

	return 0
}

// execLexCommand executes the `lex` subcommand: it prints the tokens of a
// single source file.
func execLexCommand(result *olive.ArgParseResult) int {
	path, _ := result.PrimaryArg()

	buff, err := os.ReadFile(path)
	if err != nil {
		report.ReportFatal("unable to read `%s`: %s", path, err)
	}

	src := report.NewSource(path, string(buff))
	l := syntax.NewLexer(src.Text, common.DefaultMaxLexemeLen)
	if err := l.Tokenize(); err != nil {
		report.ReportError(src, err)
		return 1
	}

	for _, warning := range l.Warnings() {
		report.ReportWarning(src, warning)
	}

	syntax.PrintTokens(os.Stdout, l.Tokens(), l.Cursors())
	return 0
}

// execEvalCommand executes the `eval` subcommand and handles all errors.
func execEvalCommand(result *olive.ArgParseResult) int {
	rootPath, _ := result.PrimaryArg()

	cfgPath := ""
	if cfgArgVal, ok := result.Arguments["config"]; ok {
		cfgPath = cfgArgVal.(string)
	}

	c := NewCompiler(rootPath, cfgPath)
	ok := c.Analyze()

	switch result.Arguments["emit"].(string) {
	case "values":
		c.EmitValues(os.Stdout)
	case "llvm":
		// only complete modules are emitted
		if ok {
			c.EmitLLVM(os.Stdout)
		}
	case "debug":
		c.EmitDebug(os.Stdout)
	}

	report.DisplayFinished()

	if report.AnyErrors() {
		return 1
	}

	return 0
}
