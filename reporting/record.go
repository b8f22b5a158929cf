package reporting

import (
	"sort"

	"github.com/launchdarkly/test-tiers/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ItemRecord is the report entry for one collected item.
type ItemRecord struct {
	item    *framework.Item
	Outcome string
	Errors  []string
	// Extra holds fields added by other plugins, keyed by the plugin's namespace and then by
	// field name.
	Extra map[string]map[string]string
}

func newItemRecord(item *framework.Item) *ItemRecord {
	return &ItemRecord{item: item, Extra: make(map[string]map[string]string)}
}

func (r *ItemRecord) Item() *framework.Item {
	return r.item
}

func (r *ItemRecord) AttachExtra(namespace, key, value string) {
	fields := r.Extra[namespace]
	if fields == nil {
		fields = make(map[string]string)
		r.Extra[namespace] = fields
	}
	fields[key] = value
}

func (r *ItemRecord) asValue() ldvalue.Value {
	b := ldvalue.ObjectBuild().
		Set("id", ldvalue.String(r.item.ID().String()))
	if r.Outcome != "" {
		b = b.Set("outcome", ldvalue.String(r.Outcome))
	}
	if len(r.Errors) != 0 {
		errs := ldvalue.ArrayBuild()
		for _, e := range r.Errors {
			errs = errs.Add(ldvalue.String(e))
		}
		b = b.Set("errors", errs.Build())
	}
	if len(r.Extra) != 0 {
		extra := ldvalue.ObjectBuild()
		for _, ns := range sortedKeys(r.Extra) {
			fields := ldvalue.ObjectBuild()
			for k, v := range r.Extra[ns] {
				fields = fields.Set(k, ldvalue.String(v))
			}
			extra = extra.Set(ns, fields.Build())
		}
		b = b.Set("extra", extra.Build())
	}
	return b.Build()
}

func sortedKeys(m map[string]map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
