// Package cli implements the clspec command-line tool.
//
// # Overview
//
// clspec compiles declarative command definitions into grammars and matches
// argument lists against them. It is the reference front end for the
// grammar, matcher and help packages, and a convenient way to develop and
// check definitions before embedding them in a program.
//
// # Commands
//
// check - Compile one or more definitions concurrently and report defects:
//
//	clspec check -d a.yaml -d b.json [--format yaml|json|table] [--output FILE]
//
// match - Match an argument list against a definition:
//
//	clspec match -d example.yaml [--format yaml|json|table] -- -bf -dv 3.5 file1.txt
//
// When the arguments contain -help, -usage or -topics the requested help text
// is printed instead of the resolved command line.
//
// help - Render the help text of a definition:
//
//	clspec help -d example.yaml [--view full|usage|topics] [--hidden]
//
// grammar - Print the compiled grammar summary:
//
//	clspec grammar -d example.yaml --format json
//
// # Definition Sources
//
// The -d flag accepts file paths, HTTP/HTTPS URLs and ConfigMap URIs of the
// form cm://namespace/name. ConfigMaps store the document under the data key
// definition.yaml or definition.json.
//
// # Environment Variables
//
//	CLSPEC_DEFINITION  Default for -d
//	CLSPEC_FORMAT      Default output format
//	CLSPEC_KUBECONFIG  Kubeconfig for cm:// sources
//	CLSPEC_LOG_LEVEL   Log verbosity (debug, info, warn, error), also LOG_LEVEL
//
// # Exit Codes
//
//	0  Success, or help requested
//	1  General error (unreadable definition, invalid flags, output failure)
//	2  The argument list was rejected by the grammar
//	3  The definition is invalid
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to:
//   - pkg/definition - Definition loading
//   - pkg/grammar - Compilation
//   - pkg/matcher - Argument matching
//   - pkg/help - Help rendering
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/clspec/pkg/cli.version=1.0.0'"
package cli
