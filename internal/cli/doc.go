// Package cli implements the semver-next command line.
//
// # Commands
//
// bump - Print the version that follows VERSION:
//
//	semver-next bump --minor --alpha 2.3.5
//
// compare - Print -1, 0 or 1 for the precedence of A against B:
//
//	semver-next compare 1.0.0-rc.1 1.0.0
//
// sort - Sort versions given as arguments or, without arguments, one per line
// on stdin:
//
//	git tag --list 'v*' | sed 's/^v//' | semver-next sort --reverse
//
// validate - Check a version and print it normalized, or its structure with
// --format json|yaml:
//
//	semver-next --format json validate 1.2.3-beta.4+sha.5114f85
//
// next - Work out the next release of the products described in .semver.yml
// from their last tag and the conventional commits made since:
//
//	semver-next next --all
//	semver-next next --target mobile-customerA --channel beta
//
// # Environment Variables
//
//	LOG_LEVEL       Set logging verbosity (debug, info, warn, error)
//	verbose         "true" or "yes" enables debug logging
//	config          Path to the config file used by next
//	config_content  Inline YAML config used by next
//	target          Product or product-variant computed by next
//
// The lowercase names match the inputs of a Bitrise step. When envman is on
// PATH, next exports its results as SEMVER_* variables for the following
// steps.
//
// # Exit Codes
//
//	0  Success
//	1  Any error
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'main.version=1.0.0'"
package cli
