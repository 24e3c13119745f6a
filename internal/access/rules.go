// Package access decides whether a user may open an exercise or start a test.
//
// Both decisions are evaluated against one Rules table: the block
// prerequisite graph and the test progression live side by side, and every
// check goes through the same two questions (has the user completed a test,
// has the user completed a block).
package access

import (
	"errors"
	"fmt"
	"strings"

	"github.com/speedreading/trainer/internal/config"
)

// BlockPrerequisite is what must be done before exercises of Block open.
// An empty RequiredTest or RequiredBlocks is vacuously satisfied.
type BlockPrerequisite struct {
	Block          int
	RequiredBlocks []int
	RequiredTest   string
}

// TestRule is what must be done before a test opens. PriorTest is checked
// before RequiredBlock.
type TestRule struct {
	PriorTest     string
	RequiredBlock int
}

type Rules struct {
	EntryTest string
	Tests     map[string]TestRule
	// Fallback applies to every test that is neither the entry test nor in Tests.
	Fallback     TestRule
	Blocks       map[int]BlockPrerequisite
	DisplayNames map[string]string
}

// DefaultRules returns the built-in progression: initial, then test_1 after
// block 1, then test_2 after block 2, then any other test after block 3.
func DefaultRules() Rules {
	return Rules{
		EntryTest: "initial",
		Tests: map[string]TestRule{
			"test_1": {PriorTest: "initial", RequiredBlock: 1},
			"test_2": {PriorTest: "test_1", RequiredBlock: 2},
		},
		Fallback: TestRule{PriorTest: "test_2", RequiredBlock: 3},
		Blocks: map[int]BlockPrerequisite{
			2: {Block: 2, RequiredBlocks: []int{1}, RequiredTest: "test_1"},
			3: {Block: 3, RequiredBlocks: []int{1, 2}, RequiredTest: "test_2"},
		},
		DisplayNames: map[string]string{
			"initial": "Initial Test",
			"test_1":  "Test 1",
			"test_2":  "Test 2",
		},
	}
}

// RulesFromConfig builds Rules from the progression section of the config.
func RulesFromConfig(cfg config.ProgressionConfig) (Rules, error) {
	rules := Rules{
		EntryTest:    cfg.EntryTest,
		Tests:        make(map[string]TestRule, len(cfg.Tests)),
		Fallback:     TestRule{PriorTest: cfg.FallbackPriorTest, RequiredBlock: cfg.FallbackBlock},
		Blocks:       make(map[int]BlockPrerequisite, len(cfg.Blocks)),
		DisplayNames: make(map[string]string, len(cfg.Tests)),
	}

	var errs []error
	for _, t := range cfg.Tests {
		if _, ok := rules.Tests[t.Name]; ok {
			errs = append(errs, fmt.Errorf("test rule %q is defined more than once", t.Name))
			continue
		}
		if t.DisplayName != "" {
			rules.DisplayNames[t.Name] = t.DisplayName
		}
		if t.Name == cfg.EntryTest {
			if t.PriorTest != "" || t.RequiredBlock != 0 {
				errs = append(errs, fmt.Errorf("entry test %q cannot have prerequisites", t.Name))
			}
			continue
		}
		if t.PriorTest == t.Name {
			errs = append(errs, fmt.Errorf("test %q cannot require itself", t.Name))
		}
		rules.Tests[t.Name] = TestRule{PriorTest: t.PriorTest, RequiredBlock: t.RequiredBlock}
	}
	for _, b := range cfg.Blocks {
		if _, ok := rules.Blocks[b.Block]; ok {
			errs = append(errs, fmt.Errorf("block %d has more than one prerequisite", b.Block))
			continue
		}
		for _, required := range b.RequiredBlocks {
			if required >= b.Block {
				errs = append(errs, fmt.Errorf("block %d cannot require block %d", b.Block, required))
			}
		}
		rules.Blocks[b.Block] = BlockPrerequisite{Block: b.Block, RequiredBlocks: b.RequiredBlocks, RequiredTest: b.RequiredTest}
	}
	if err := errors.Join(errs...); err != nil {
		return Rules{}, fmt.Errorf("invalid progression: %w", err)
	}
	return rules, nil
}

// Requirement returns the prerequisite of block, if any.
func (r Rules) Requirement(block int) (BlockPrerequisite, bool) {
	req, ok := r.Blocks[block]
	return req, ok
}

// TestRule returns the rule for the named test. The entry test has none.
func (r Rules) TestRule(name string) (TestRule, bool) {
	if name == r.EntryTest {
		return TestRule{}, false
	}
	if rule, ok := r.Tests[name]; ok {
		return rule, true
	}
	return r.Fallback, true
}

// DisplayName returns the configured label of a test, deriving "Test N" from
// names like test_N.
func (r Rules) DisplayName(name string) string {
	if display, ok := r.DisplayNames[name]; ok {
		return display
	}
	if n, ok := strings.CutPrefix(name, "test_"); ok && n != "" {
		return "Test " + n
	}
	return name
}
