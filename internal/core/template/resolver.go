// Package template builds the substitution context for a task from its
// upstream results and resolves {{name}} placeholders against it.
package template

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

// BuildContext assembles the substitution context for task by walking its
// DependsOn in declared order and merging each parent's named outputs.
// Later parents overwrite earlier ones on key collision; Go's randomized
// map iteration order within a single parent's Outputs is never observed
// because each parent contributes its whole output map at once.
func BuildContext(task domain.Task, results domain.ResultMap) map[string]any {
	ctx := make(map[string]any)
	for _, parent := range task.DependsOn {
		for k, v := range results[parent] {
			ctx[k] = v
		}
	}
	return ctx
}

// Resolve returns a copy of task with every {{name}} placeholder in
// Command, URL, Headers, Body, Subject, EmailBody, and Recipients
// replaced by its value in ctx. Placeholders are matched exactly
// ("{{name}}", no internal whitespace tolerance); a placeholder with no
// entry in ctx is left untouched.
func Resolve(task domain.Task, ctx map[string]any) (domain.Task, error) {
	out := task

	out.Command = substitute(task.Command, ctx)
	out.URL = substitute(task.URL, ctx)
	out.Subject = substitute(task.Subject, ctx)
	out.EmailBody = substitute(task.EmailBody, ctx)

	if len(task.Headers) > 0 {
		headers := make(map[string]string, len(task.Headers))
		for k, v := range task.Headers {
			headers[k] = substitute(v, ctx)
		}
		out.Headers = headers
	}

	if len(task.Recipients) > 0 {
		recipients := make([]string, len(task.Recipients))
		for i, r := range task.Recipients {
			recipients[i] = substitute(r, ctx)
		}
		out.Recipients = recipients
	}

	if task.Body != nil {
		body, err := resolveBody(task.Body, ctx)
		if err != nil {
			return domain.Task{}, zerr.With(zerr.Wrap(err, "template: resolve body"), "task_id", task.ID)
		}
		out.Body = body
	}

	return out, nil
}

// resolveBody round-trips body through JSON, substitutes placeholders in
// the serialized form, and parses the result back into a generic value.
// This reaches placeholders nested at any depth without walking the
// value's structure by hand.
func resolveBody(body any, ctx map[string]any) (any, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, zerr.Wrap(err, "marshal body")
	}

	resolved := substitute(string(raw), ctx)

	var out any
	if err := json.Unmarshal([]byte(resolved), &out); err != nil {
		return nil, zerr.Wrap(err, "unmarshal resolved body")
	}
	return out, nil
}

// substitute replaces every exact "{{name}}" occurrence in s with the
// string form of ctx[name].
func substitute(s string, ctx map[string]any) string {
	if s == "" || !strings.Contains(s, "{{") {
		return s
	}
	for name, val := range ctx {
		placeholder := "{{" + name + "}}"
		if strings.Contains(s, placeholder) {
			s = strings.ReplaceAll(s, placeholder, stringify(val))
		}
	}
	return s
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
