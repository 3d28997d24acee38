package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/padkit/helipad/pkg/helipad"
	"github.com/spf13/cobra"
)

// fieldFlags binds --title, --tags, --source and --source-file.
type fieldFlags struct {
	title, tags, source, sourceFile string
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "document title")
	cmd.Flags().StringVar(&f.tags, "tags", "", "space-separated tags")
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "document body")
	cmd.Flags().StringVar(&f.sourceFile, "source-file", "", "read the body from a file, - for stdin")
	cmd.MarkFlagsMutuallyExclusive("source", "source-file")
}

// fields returns only the flags the user set, so update leaves the rest alone.
func (f *fieldFlags) fields(cmd *cobra.Command, in io.Reader) (helipad.Fields, error) {
	out := helipad.Fields{}
	if cmd.Flags().Changed("title") {
		out[helipad.FieldTitle] = f.title
	}
	if cmd.Flags().Changed("tags") {
		out[helipad.FieldTags] = f.tags
	}
	if cmd.Flags().Changed("source") {
		out[helipad.FieldSource] = f.source
	}
	if cmd.Flags().Changed("source-file") {
		var (
			b   []byte
			err error
		)
		if f.sourceFile == "-" {
			b, err = io.ReadAll(in)
		} else {
			b, err = os.ReadFile(f.sourceFile)
		}
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		out[helipad.FieldSource] = string(b)
	}
	return out, nil
}

func newCreateCommand(a *app) *cobra.Command {
	var f fieldFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields, err := f.fields(cmd, a.in)
			if err != nil {
				return err
			}
			res, err := a.client.Create(cmd.Context(), fields)
			if err != nil {
				return err
			}
			return a.printResult("create", res)
		},
	}
	f.register(cmd)
	return cmd
}

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			doc, err := a.client.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printDocument(doc)
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every document",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := a.client.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			return a.printDocuments(docs)
		},
	}
}

func newTitlesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "titles",
		Short: "List document ids and titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := a.client.GetTitles(cmd.Context())
			if err != nil {
				return err
			}
			return a.printDocuments(docs)
		},
	}
}

func newHTMLCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "html ID",
		Short: "Print a document rendered as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			html, err := a.client.GetHTML(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, html)
			return err
		},
	}
}

func newFindCommand(a *app) *cobra.Command {
	var byTag bool
	cmd := &cobra.Command{
		Use:   "find TERM",
		Short: "Search documents by text, or by tag with --tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			findArgs := args
			if byTag {
				findArgs = []string{helipad.ByTag, args[0]}
			}
			docs, err := a.client.Find(cmd.Context(), findArgs...)
			if err != nil {
				return err
			}
			if docs == nil && a.format == "table" {
				_, err := fmt.Fprintln(a.out, "No documents found.")
				return err
			}
			return a.printDocuments(docs)
		},
	}
	cmd.Flags().BoolVar(&byTag, "tag", false, "treat TERM as a tag name")
	return cmd
}

func newUpdateCommand(a *app) *cobra.Command {
	var f fieldFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the title, tags or body of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			fields, err := f.fields(cmd, a.in)
			if err != nil {
				return err
			}
			res, err := a.client.Update(cmd.Context(), id, fields)
			if err != nil {
				return err
			}
			return a.printResult("update", res)
		},
	}
	f.register(cmd)
	return cmd
}

func newDestroyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "destroy ID",
		Aliases: []string{"rm"},
		Short:   "Delete a document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Destroy(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printResult("destroy", res)
		},
	}
}
