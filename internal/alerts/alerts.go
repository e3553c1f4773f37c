// Package alerts evaluates user-defined expressions against journal records.
// Package alerts 针对日志记录执行用户定义的表达式规则。
package alerts

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/livp123/edjournal/internal/journal"
	"github.com/livp123/edjournal/internal/metrics"
	jerrors "github.com/livp123/edjournal/pkg/errors"
	"go.uber.org/zap"
)

// RuleConfig is one alert rule as written in the config file.
// RuleConfig 是配置文件中的一条告警规则。
type RuleConfig struct {
	ID         string `yaml:"id"`
	Expression string `yaml:"expression"`
	Message    string `yaml:"message,omitempty"`
}

// Rule is a compiled alert rule.
type Rule struct {
	ID      string
	Source  string
	Message string
	Program *vm.Program
}

// Match describes a record that satisfied a rule.
type Match struct {
	RuleID  string
	Message string
	Event   string
	Source  string
	Record  journal.Record
}

// MatchFunc receives every match, on the publishing goroutine.
type MatchFunc func(Match)

// Engine holds the active rule set. Rules can be swapped while records are
// being evaluated.
// Engine 保存当前规则集，可在运行时替换。
type Engine struct {
	rules   atomic.Pointer[[]Rule]
	log     *zap.SugaredLogger
	onMatch MatchFunc
}

// NewEngine creates an engine with no rules. onMatch may be nil.
func NewEngine(log *zap.SugaredLogger, onMatch MatchFunc) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	e := &Engine{log: log, onMatch: onMatch}
	e.rules.Store(&[]Rule{})
	return e
}

// Compile turns a rule config into an executable rule. The expression sees
// the record's top-level fields as variables; fields absent from a record
// evaluate to nil.
// Compile 将规则配置编译为可执行规则。
func Compile(cfg RuleConfig) (Rule, error) {
	id := strings.TrimSpace(cfg.ID)
	if id == "" {
		return Rule{}, jerrors.NewExpressionError(cfg.ID, errors.New("empty rule id"))
	}
	src := strings.TrimSpace(cfg.Expression)
	if src == "" {
		return Rule{}, jerrors.NewExpressionError(id, errors.New("empty expression"))
	}

	program, err := expr.Compile(src,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return Rule{}, jerrors.NewExpressionError(id, err)
	}

	msg := cfg.Message
	if msg == "" {
		msg = id
	}
	return Rule{ID: id, Source: src, Message: msg, Program: program}, nil
}

// UpdateRules compiles configs and replaces the active rule set. On error the
// previous set stays active.
// UpdateRules 编译并替换当前规则集；出错时保留旧规则。
func (e *Engine) UpdateRules(configs []RuleConfig) error {
	rules := make([]Rule, 0, len(configs))
	seen := make(map[string]struct{}, len(configs))
	for _, cfg := range configs {
		rule, err := Compile(cfg)
		if err != nil {
			return err
		}
		if _, dup := seen[rule.ID]; dup {
			return jerrors.NewExpressionError(rule.ID, errors.New("duplicate rule id"))
		}
		seen[rule.ID] = struct{}{}
		rules = append(rules, rule)
		e.log.Debugf("Alert rule %s compiled: %s", rule.ID, rule.Source)
	}
	e.rules.Store(&rules)
	e.log.Infof("✅ Loaded %d alert rule(s)", len(rules))
	return nil
}

// Rules returns the active rule set.
func (e *Engine) Rules() []Rule {
	return *e.rules.Load()
}

// Evaluate returns the ids of every rule the record satisfies, in rule order.
// A rule whose expression fails at runtime, for example comparing a missing
// field with a number, counts as not matched.
// Evaluate 返回记录满足的所有规则 ID。
func (e *Engine) Evaluate(rec journal.Record) []string {
	rules := *e.rules.Load()
	if len(rules) == 0 {
		return nil
	}

	env := rec.Plain()
	var matched []string
	for _, rule := range rules {
		out, err := expr.Run(rule.Program, env)
		if err != nil {
			e.log.Debugf("Alert rule %s skipped %s: %v", rule.ID, rec.Event(), err)
			continue
		}
		if ok, _ := out.(bool); ok {
			matched = append(matched, rule.ID)
		}
	}
	return matched
}

// Attach subscribes the engine to every record published on bus and returns
// the unsubscribe function.
// Attach 订阅总线上的所有记录。
func (e *Engine) Attach(bus *journal.Bus) func() {
	return bus.OnRecord(func(ev journal.RecordEvent) error {
		e.handle(ev)
		return nil
	})
}

func (e *Engine) handle(ev journal.RecordEvent) {
	ids := e.Evaluate(ev.Record)
	if len(ids) == 0 {
		return
	}

	byID := make(map[string]Rule, len(ids))
	for _, r := range e.Rules() {
		byID[r.ID] = r
	}
	for _, id := range ids {
		rule, ok := byID[id]
		if !ok {
			// Rule set was replaced between Evaluate and here.
			continue
		}
		metrics.AlertsMatched.WithLabelValues(id).Inc()
		e.log.Infof("🚨 [%s] %s (%s)", id, rule.Message, ev.Name)
		if e.onMatch != nil {
			e.onMatch(Match{
				RuleID:  id,
				Message: rule.Message,
				Event:   ev.Name,
				Source:  ev.Source,
				Record:  ev.Record,
			})
		}
	}
}

// String implements fmt.Stringer for log output.
func (m Match) String() string {
	return fmt.Sprintf("%s: %s", m.RuleID, m.Message)
}
