package application

import (
	"localesync/internal/domain/entities"
)

// Pass identifies which reconciliation pass produced a plan entry.
type Pass int

const (
	// PassMissing covers template components the locale document lacks.
	PassMissing Pass = iota + 1
	// PassMain covers every component the locale document defines.
	PassMain
)

func (p Pass) String() string {
	switch p {
	case PassMissing:
		return "missing"
	case PassMain:
		return "main"
	default:
		return "unknown"
	}
}

// PlanEntry is one reconciled component, ready to be emitted.
type PlanEntry struct {
	Component   string
	Pass        Pass
	Data        any // locale side of the component, as resolved
	Template    *entities.Tree
	Translation *entities.Tree
}

// Plan lists a locale's components in emission order. A component present
// in both passes appears twice and the later entry overwrites the earlier.
type Plan struct {
	Entries []PlanEntry
	// Skipped holds locale components the template does not define.
	Skipped []string
}

// ReconcileDocument reconciles every component of doc against template.
//
// Template components missing from doc are reconciled first, with the
// template itself standing in for the locale side so nested subtrees are
// kept. Components doc does define follow, in doc order.
func ReconcileDocument(template, doc *entities.Tree, helpKey string) Plan {
	var plan Plan

	for _, component := range template.Keys() {
		if doc.Has(component) {
			continue
		}
		tmpl, _ := template.Subtree(component)
		plan.Entries = append(plan.Entries, PlanEntry{
			Component:   component,
			Pass:        PassMissing,
			Data:        tmpl,
			Template:    tmpl,
			Translation: ReconcileComponent(tmpl, tmpl, helpKey),
		})
	}

	for _, component := range doc.Keys() {
		tmpl, ok := template.Subtree(component)
		if !ok {
			plan.Skipped = append(plan.Skipped, component)
			continue
		}
		data, _ := doc.Get(component)
		plan.Entries = append(plan.Entries, PlanEntry{
			Component:   component,
			Pass:        PassMain,
			Data:        data,
			Template:    tmpl,
			Translation: ReconcileComponent(data, tmpl, helpKey),
		})
	}

	return plan
}

// ReconcileComponent builds a template-shaped copy of data.
//
// Every template key except helpKey is visited in template order. Leaves
// take data's value when it is truthy and the template's otherwise. Nested
// subtrees are reconciled recursively, but only while data is present: when
// data is absent at a level, that level's nested subtrees are omitted and
// only its leaves are filled.
func ReconcileComponent(data any, template *entities.Tree, helpKey string) *entities.Tree {
	present := entities.Truthy(data)
	src, _ := data.(*entities.Tree)

	out := entities.NewTree()
	for _, key := range template.Keys() {
		if key == helpKey {
			continue
		}
		tv, _ := template.Get(key)

		sub, nested := tv.(*entities.Tree)
		if !nested {
			if v, ok := src.Get(key); present && ok && entities.Truthy(v) {
				out.Set(key, v)
			} else {
				out.Set(key, tv)
			}
			continue
		}

		if !present {
			continue
		}
		child, _ := src.Get(key)
		out.Set(key, ReconcileComponent(child, sub, helpKey))
	}
	return out
}

// HelpMarkup returns the component's help markup: the locale's own value
// when it is a non-empty string, the template's otherwise.
func HelpMarkup(data any, template *entities.Tree, helpKey string) string {
	if helpKey == "" {
		return ""
	}
	if src, ok := data.(*entities.Tree); ok {
		if v, ok := src.Get(helpKey); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	if v, ok := template.Get(helpKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
