package internal

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gamemath-labs/mlin/internal/parse"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

// ignoreSet records `// mlin:ignore` comments. A bare marker suppresses
// every rule on its own and the following line; `mlin:ignore rule1,rule2`
// suppresses only the named rules.
type ignoreSet struct {
	// line -> rule names; an empty entry means "all rules"
	byLine map[int]map[string]bool
}

const ignoreMarker = "mlin:ignore"

func parseIgnoreComments(root *sitter.Node, src []byte) *ignoreSet {
	set := &ignoreSet{byLine: map[int]map[string]bool{}}

	parse.Walk(root, func(n *sitter.Node) bool {
		if n.Type() != "comment" {
			return true
		}
		text := strings.TrimLeft(parse.Content(n, src), "/* \t")
		if !strings.HasPrefix(text, ignoreMarker) {
			return true
		}
		rules := map[string]bool{}
		for _, name := range strings.Split(text[len(ignoreMarker):], ",") {
			if name = strings.TrimSpace(name); name != "" {
				rules[name] = true
			}
		}
		line := int(n.StartPoint().Row) + 1
		set.byLine[line] = rules
		set.byLine[line+1] = rules
		return true
	})

	return set
}

func (s *ignoreSet) ignored(line int, rule string) bool {
	rules, ok := s.byLine[line]
	if !ok {
		return false
	}
	return len(rules) == 0 || rules[rule]
}

func (s *ignoreSet) filter(issues []tt.Issue) []tt.Issue {
	kept := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !s.ignored(issue.Start.Line, issue.Rule) {
			kept = append(kept, issue)
		}
	}
	return kept
}
