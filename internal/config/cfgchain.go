package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
)

// DirectiveError is returned by LoadCfgChain for a VHDLLINT.cfg line this
// port doesn't recognize, mirroring the reference tool's "Invalid
// configuration option" diagnostic; callers may choose to report it and
// keep going rather than abort the run.
type DirectiveError struct {
	File, Name string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("invalid configuration option (%s) in file %s", e.Name, e.File)
}

// CfgChain is the accumulated effect of every VHDLLINT.cfg file between a
// source file and the filesystem root, walked once per file the way the
// reference tool's ProcessConfigOverrides does.
type CfgChain struct {
	// Filters holds every "filter=" directive found, ordered so that the
	// chain's caller can apply them with the top-level directory's entry
	// last (least priority), matching "apply in reverse" in the original.
	Filters []string

	// LineLength is non-nil if some VHDLLINT.cfg set "linelength=".
	LineLength *int

	// Extensions is non-nil if some VHDLLINT.cfg set "extensions=".
	Extensions []string

	// Root is non-empty if some VHDLLINT.cfg set "root=", already resolved
	// relative to that config file's directory.
	Root string

	// Excluded is true if filename should be skipped entirely because it
	// matched an "exclude_files=" pattern.
	Excluded bool

	// ExcludedBy names the config file and pattern responsible, for the
	// "Ignoring file" informational message.
	ExcludedBy, ExcludedPattern, ExcludedComponent string
}

// LoadCfgChain walks from filename's directory up to the filesystem root,
// reading every VHDLLINT.cfg file found and accumulating its directives,
// stopping early at a "set noparent" line. Directives this port doesn't
// recognize are returned as errs rather than aborting the walk, so one
// stray line in a distant ancestor directory can't take down the whole
// run.
func LoadCfgChain(filename string) (*CfgChain, []error) {
	chain := &CfgChain{}
	var errs []error

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return chain, []error{err}
	}

	var baseName string
	current := absFilename
	for {
		dir, bn := filepath.Split(current)
		dir = filepath.Clean(dir)
		if bn == "" {
			break // reached the filesystem root
		}
		if baseName != "" {
			baseName = filepath.Join(bn, baseName)
		} else {
			baseName = bn
		}

		cfgFile := filepath.Join(dir, "VHDLLINT.cfg")
		current = dir
		if _, err := os.Stat(cfgFile); err != nil {
			continue
		}
		if stop := applyCfgFile(cfgFile, baseName, chain, &errs); stop {
			break
		}
	}

	return chain, errs
}

// applyCfgFile parses one VHDLLINT.cfg file and folds its directives into
// chain, returning true if a "set noparent" line means the walk should stop
// climbing further.
func applyCfgFile(cfgFile, baseName string, chain *CfgChain, errs *[]error) bool {
	iniFile, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:    true,
		IgnoreInlineComment: true,
		AllowShadows:        true,
	}, cfgFile)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("skipping config file %q: %w", cfgFile, err))
		return true
	}

	section := iniFile.Section("")
	stopHere := false

	for _, key := range section.Keys() {
		name := strings.TrimSpace(key.Name())
		val := strings.TrimSpace(key.Value())

		switch {
		case name == "set noparent" || (name == "set" && val == "noparent"):
			stopHere = true
		case name == "filter":
			chain.Filters = append(chain.Filters, key.ValueWithShadows()...)
		case name == "exclude_files":
			pattern := filepath.FromSlash(val)
			re, err := regexp.Compile("^(?:" + pattern + ")")
			if err != nil {
				*errs = append(*errs, err)
				continue
			}
			if re.MatchString(baseName) {
				chain.Excluded = true
				chain.ExcludedBy = cfgFile
				chain.ExcludedPattern = val
				chain.ExcludedComponent = baseName
			}
		case name == "linelength":
			n, err := strconv.Atoi(val)
			if err != nil {
				*errs = append(*errs, fmt.Errorf("line length must be numeric in %s", cfgFile))
				continue
			}
			chain.LineLength = &n
		case name == "extensions":
			chain.Extensions = splitCommaList(val)
		case name == "root":
			chain.Root = filepath.Join(filepath.Dir(cfgFile), val)
		default:
			*errs = append(*errs, &DirectiveError{File: cfgFile, Name: name})
		}
	}

	return stopHere
}

func splitCommaList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
