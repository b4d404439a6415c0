// Package internal wires the rule catalogue to parsed files: one engine per
// invocation, one parse per file, rules fanned out concurrently.
package internal

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/gamemath-labs/mlin/internal/parse"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	ignoredRules map[string]bool
	rules        map[string]LintRule

	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching bool
}

// NewEngine creates a new lint engine with the default rule set, adjusted by
// the configured per-rule severities.
func NewEngine(rootDir string, rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{watchDirs: []string{rootDir}}
	engine.applyRules(rules)
	return engine, nil
}

type ruleConstructor func() LintRule

type ruleMap map[string]ruleConstructor

var allRuleConstructors = ruleMap{
	"simplify-multiplicative": NewMultiplicativeSimplifyRule,
	"reciprocal-division":     NewReciprocalDivisionRule,
	"distance-fold":           NewDistanceFoldRule,
	"half-rotation-fusion":    NewHalfRotationFusionRule,
	"multiply-by-one":         NewMultiplyByOneRule,
	"undefined-guard-fold":    NewUndefinedGuardRule,
	"epsilon-zero-check":      NewEpsilonZeroCheckRule,
	"net-zero-update":         NewNetZeroUpdateRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	for key, construct := range allRuleConstructors {
		e.rules[key] = construct()
	}

	for key, rule := range rules {
		r, ok := e.rules[key]
		if !ok {
			// unknown rule name, skip
			continue
		}
		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
			continue
		}
		r.SetSeverity(rule.Severity)
	}
}

// Run applies all rules to the given file and returns a slice of issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	issues, err := e.runSource(content)
	if err != nil {
		return nil, err
	}
	for i := range issues {
		issues[i].Filename = filename
	}
	return issues, nil
}

// RunSource applies all rules to raw source and returns a slice of issues.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	return e.runSource(source)
}

func (e *Engine) runSource(source []byte) ([]tt.Issue, error) {
	tree, err := parse.Parse(context.Background(), source)
	if err != nil {
		return nil, fmt.Errorf("error parsing content: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	ignores := parseIgnoreComments(root, source)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for _, rule := range e.rules {
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			if e.ignoredRules[r.Name()] {
				return
			}
			issues, err := r.Check("", root, source)
			if err != nil {
				return
			}

			kept := ignores.filter(issues)

			mu.Lock()
			allIssues = append(allIssues, kept...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	return allIssues, nil
}

// IgnoreRule disables a rule for this engine.
func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// Rules returns the names of the active rules.
func (e *Engine) Rules() []string {
	names := make([]string, 0, len(e.rules))
	for name := range e.rules {
		if !e.ignoredRules[name] {
			names = append(names, name)
		}
	}
	return names
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a
// `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(string(content)), nil
}

// NewSourceCode splits raw source into lines.
func NewSourceCode(content string) *SourceCode {
	return &SourceCode{Lines: strings.Split(content, "\n")}
}
