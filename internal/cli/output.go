package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/padkit/helipad/pkg/helipad"
	"gopkg.in/yaml.v3"
)

var formats = []string{"table", "json", "yaml"}

func validateFormat(format string) error {
	for _, f := range formats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q (valid: %s)", format, strings.Join(formats, ", "))
}

// documentView is the serialized form of a document for json and yaml.
type documentView struct {
	ID        int        `json:"id" yaml:"id"`
	Title     *string    `json:"title,omitempty" yaml:"title,omitempty"`
	Tags      []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Source    *string    `json:"source,omitempty" yaml:"source,omitempty"`
	ShareURL  *string    `json:"share_url,omitempty" yaml:"share_url,omitempty"`
	CreatedOn *time.Time `json:"created_on,omitempty" yaml:"created_on,omitempty"`
	UpdatedOn *time.Time `json:"updated_on,omitempty" yaml:"updated_on,omitempty"`
}

func viewOf(d *helipad.Document) documentView {
	return documentView{
		ID:        d.ID,
		Title:     d.Title,
		Tags:      d.Tags,
		Source:    d.Source,
		ShareURL:  d.ShareURL,
		CreatedOn: d.CreatedOn,
		UpdatedOn: d.UpdatedOn,
	}
}

type resultView struct {
	Operation string `json:"operation" yaml:"operation"`
	Saved     *bool  `json:"saved,omitempty" yaml:"saved,omitempty"`
	Deleted   *bool  `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	ID        *int   `json:"id,omitempty" yaml:"id,omitempty"`
}

func (a *app) encode(v interface{}) error {
	switch a.format {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("invalid format %q", a.format)
}

func (a *app) printDocuments(docs []*helipad.Document) error {
	if a.format != "table" {
		views := make([]documentView, 0, len(docs))
		for _, d := range docs {
			views = append(views, viewOf(d))
		}
		return a.encode(views)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTAGS\tUPDATED")
	for _, d := range docs {
		updated := ""
		if d.UpdatedOn != nil {
			updated = d.UpdatedOn.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", d.ID, d.TitleOr(""), strings.Join(d.Tags, " "), updated)
	}
	return w.Flush()
}

func (a *app) printDocument(d *helipad.Document) error {
	if a.format != "table" {
		return a.encode(viewOf(d))
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%d\n", d.ID)
	fmt.Fprintf(w, "Title:\t%s\n", d.TitleOr(""))
	fmt.Fprintf(w, "Tags:\t%s\n", strings.Join(d.Tags, " "))
	if d.ShareURL != nil {
		fmt.Fprintf(w, "Share:\t%s\n", *d.ShareURL)
	}
	if d.UpdatedOn != nil {
		fmt.Fprintf(w, "Updated:\t%s\n", d.UpdatedOn.Format(time.RFC3339))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(a.out, "\n%s\n", d.SourceOr(""))
	return err
}

func (a *app) printResult(op string, r *helipad.Result) error {
	if a.format != "table" {
		return a.encode(resultView{Operation: op, Saved: r.Saved, Deleted: r.Deleted, ID: r.DocID})
	}
	switch {
	case r.IsDeleted():
		_, err := fmt.Fprintln(a.out, "deleted")
		return err
	case r.IsSaved() && r.DocID != nil:
		_, err := fmt.Fprintf(a.out, "saved document %d\n", *r.DocID)
		return err
	case r.IsSaved():
		_, err := fmt.Fprintln(a.out, "saved")
		return err
	}
	return fmt.Errorf("%s: service did not acknowledge the change", op)
}
