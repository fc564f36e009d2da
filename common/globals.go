package common

// Version is the current front end version as a string.
const Version string = "0.1.0"

// ConfigFileName is the name of the target configuration file.
const ConfigFileName string = "ctfe.toml"

// SourceFileExt is the file extension for a source file.
const SourceFileExt string = ".ct"

// DefaultPointerSize is the pointer width in bytes used when no target
// configuration is given.
const DefaultPointerSize uint64 = 8

// DefaultMaxLexemeLen is the default maximum length in bytes of a single
// lexeme.  Lexemes longer than this are a fatal tokenizer error.
const DefaultMaxLexemeLen int = 255
