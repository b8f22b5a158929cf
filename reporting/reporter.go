package reporting

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/launchdarkly/test-tiers/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// PluginName is the name the Reporter registers under.
const PluginName = "output"

// Reporter is a plugin that keeps an ItemRecord for every selected item. When it creates a
// record it offers it to every framework.ItemReportHook, so that other plugins can attach
// extra fields.
type Reporter struct {
	path       string
	records    []*ItemRecord
	byItem     map[*framework.Item]*ItemRecord
	deselected []framework.TestID
}

// New creates a Reporter. If path is not empty, the report is written to that file when the
// session finishes; the -report option overrides it.
func New(path string) *Reporter {
	return &Reporter{
		path:   path,
		byItem: make(map[*framework.Item]*ItemRecord),
	}
}

func (r *Reporter) PluginName() string { return PluginName }

func (r *Reporter) AddFlags(fs *flag.FlagSet) {
	fs.StringVar(&r.path, "report", r.path, "write a JSON report to this file")
}

func (r *Reporter) ItemsDeselected(items []*framework.Item) {
	for _, item := range items {
		r.deselected = append(r.deselected, item.ID())
	}
}

func (r *Reporter) CollectionFinished(s *framework.Session, items []*framework.Item) error {
	for _, item := range items {
		if _, ok := r.byItem[item]; ok {
			continue
		}
		record := newItemRecord(item)
		r.records = append(r.records, record)
		r.byItem[item] = record
		if err := s.ReportItemCollected(record); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) ItemFinished(item *framework.Item, result framework.TestResult) {
	record := r.byItem[item]
	if record == nil {
		return
	}
	record.Outcome = result.Outcome()
	record.Errors = nil
	for _, err := range result.Errors {
		record.Errors = append(record.Errors, err.Error())
	}
}

func (r *Reporter) SessionFinished(s *framework.Session, results framework.Results) error {
	if r.path == "" {
		return nil
	}
	s.Logger().Printf("Writing report to %s", r.path)
	return r.WriteFile(r.path)
}

// Record returns the record for an item, or nil if the item was not selected.
func (r *Reporter) Record(item *framework.Item) *ItemRecord {
	return r.byItem[item]
}

// Records returns every record in the order the items were collected.
func (r *Reporter) Records() []*ItemRecord {
	return append([]*ItemRecord(nil), r.records...)
}

// Document returns the whole report as a JSON-compatible value.
func (r *Reporter) Document() ldvalue.Value {
	items := ldvalue.ArrayBuild()
	for _, record := range r.records {
		items = items.Add(record.asValue())
	}
	deselected := ldvalue.ArrayBuild()
	for _, id := range r.deselected {
		deselected = deselected.Add(ldvalue.String(id.String()))
	}
	return ldvalue.ObjectBuild().
		Set("items", items.Build()).
		Set("deselected", deselected.Build()).
		Build()
}

func (r *Reporter) WriteJSON(w io.Writer) error {
	_, err := io.WriteString(w, r.Document().JSONString()+"\n")
	return err
}

func (r *Reporter) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := r.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return f.Close()
}
