// Package ignore implements the layered exclusion policy applied when
// building a distributable archive: a fixed built-in rule group plus optional
// per-package override rules from a .yotta_ignore file. All rules are shell
// glob patterns and a path is excluded as soon as any rule matches.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/packship/pkg/errors"
	"github.com/arthur-debert/packship/pkg/logging"
)

// OverrideFileName is the per-package rule file, one glob per line
const OverrideFileName = ".yotta_ignore"

// defaultRules are always applied, before any override rules. Override rules
// are additive and can never un-ignore these.
var defaultRules = []string{
	"upload.tar.[gb]z",
	".git",
	".hg",
	".svn",
	"yotta_modules",
	"yotta_targets",
	"build",
	".DS_Store",
	"*.sw[ponml]",
	"._*",
	"*~",
}

// RuleSet answers inclusion/exclusion queries for paths relative to a
// package root.
type RuleSet struct {
	rules  []string
	logger zerolog.Logger
}

// NewRuleSet builds the rule set for the package rooted at packDir. A
// missing override file is fine; any other read failure is returned.
func NewRuleSet(packDir string) (*RuleSet, error) {
	rs := &RuleSet{
		rules:  append([]string(nil), defaultRules...),
		logger: logging.GetLogger("ignore"),
	}

	overridePath := filepath.Join(packDir, OverrideFileName)
	f, err := os.Open(overridePath)
	if err != nil {
		if os.IsNotExist(err) {
			return rs, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIgnoreRead, "cannot read %s", overridePath)
	}
	defer f.Close()

	extra, err := parseOverrides(f)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIgnoreRead, "cannot read %s", overridePath)
	}
	rs.rules = append(rs.rules, extra...)
	return rs, nil
}

// parseOverrides reads one pattern per line, skipping comments and blanks
func parseOverrides(f *os.File) ([]string, error) {
	var rules []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Matches reports whether relPath is excluded by any rule. Patterns without
// a path separator match any single path component at any depth, so "build"
// excludes build/out.o and "*.secret" excludes sub/keys.secret. Patterns
// containing a separator are matched against the whole relative path.
func (rs *RuleSet) Matches(relPath string) bool {
	rel := filepath.ToSlash(relPath)
	components := strings.Split(rel, "/")

	for _, rule := range rs.rules {
		if rs.ruleMatches(rule, rel, components) {
			rs.logger.Debug().Str("path", relPath).Str("rule", rule).Msg("path ignored")
			return true
		}
	}
	return false
}

func (rs *RuleSet) ruleMatches(rule, rel string, components []string) bool {
	if strings.ContainsRune(rule, '/') {
		matched, err := doublestar.Match(rule, rel)
		if err != nil {
			rs.logger.Warn().Str("rule", rule).Err(err).Msg("bad ignore pattern skipped")
			return false
		}
		return matched
	}
	for _, comp := range components {
		matched, err := doublestar.Match(rule, comp)
		if err != nil {
			rs.logger.Warn().Str("rule", rule).Err(err).Msg("bad ignore pattern skipped")
			return false
		}
		if matched {
			return true
		}
	}
	return false
}

// Rules returns a copy of the active rules, built-ins first
func (rs *RuleSet) Rules() []string {
	return append([]string(nil), rs.rules...)
}
