package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/teemow/calendarctl/internal/builder"
)

// optionalBool is a flag that stays unset unless given, and accepts the
// spellings of builder.ParseBool.
type optionalBool struct {
	value *bool
}

var _ pflag.Value = (*optionalBool)(nil)

func (b *optionalBool) String() string {
	if b.value == nil {
		return ""
	}
	return strconv.FormatBool(*b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := builder.ParseBool(s)
	if err != nil {
		return err
	}
	b.value = &v
	return nil
}

func (b *optionalBool) Type() string {
	return "bool"
}

// jsonInput holds the inline and file flags of one JSON input.
type jsonInput struct {
	inline string
	file   string
}

// addJSONInputFlags registers --<name> and --<name>-file.
func addJSONInputFlags(cmd *cobra.Command, in *jsonInput, name, what string) {
	cmd.Flags().StringVar(&in.inline, name, "", what+" as JSON string")
	cmd.Flags().StringVar(&in.file, name+"-file", "", "Path to "+what+" JSON file")
}

func (in jsonInput) input() (builder.Input, error) {
	return builder.NewInput(in.inline, in.file)
}

// flat returns cmd renamed for registration directly below the root, where
// it keeps the hyphenated name of the single-level command set.
func flat(cmd *cobra.Command, name string) *cobra.Command {
	cmd.Use = name
	cmd.Hidden = true
	return cmd
}

func mustRequire(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}
