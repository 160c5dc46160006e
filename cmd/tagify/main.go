// Command tagify finds command tags in text and prints what it found
// as JSON.
//
//	tagify --spec tags.yaml "Write text --bold --fontSize 24"
//	echo "Write text --bold" | tagify --tag bold --tag italic
//
// Tag specifications come from --spec and from --tag (repeatable,
// "name" or "name example"). Text comes from the arguments or, when
// there are none, from standard input.
//
// TAGIFY_SPEC and TAGIFY_PREFIX provide defaults for --spec and
// --prefix. They can be set in a .env file in the current directory.
package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/muir/tagify"
)

type config struct {
	spec      string
	prefix    string
	tags      []string
	removeAll bool
	doubles   bool
	lowercase bool
	repair    bool
}

func main() {
	_ = godotenv.Load(".env")
	err := rootCommand(os.Stdin, os.Stdout).Execute()
	if err != nil {
		os.Exit(1)
	}
}

func rootCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var c config
	cmd := &cobra.Command{
		Use:          "tagify [flags] [text...]",
		Short:        "Find command tags in text",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, stdin)
			if err != nil {
				return err
			}
			res, err := c.parse(text)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return errors.Wrap(enc.Encode(res), "write result")
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&c.spec, "spec", os.Getenv("TAGIFY_SPEC"), "YAML or JSON file with the prefix, options, and tags")
	flags.StringVar(&c.prefix, "prefix", os.Getenv("TAGIFY_PREFIX"), "regular expression that introduces a tag (default \"--\")")
	flags.StringArrayVar(&c.tags, "tag", nil, "tag specification: \"name\" or \"name example\"")
	flags.BoolVar(&c.removeAll, "remove-all", false, "remove every prefixed word, recognized or not")
	flags.BoolVar(&c.doubles, "doubles", false, "numeric values may have a fractional part")
	flags.BoolVar(&c.lowercase, "lowercase", false, "report tag names in lowercase")
	flags.BoolVar(&c.repair, "repair", false, "repair malformed object and array values")
	return cmd
}

func readText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(err, "read standard input")
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func (c config) parse(text string) (*tagify.Result, error) {
	var options tagify.Options
	var specs []interface{}
	if c.spec != "" {
		sf, err := tagify.LoadSpecFile(c.spec)
		if err != nil {
			return nil, err
		}
		options = sf.Options()
		specs, err = sf.Tags()
		if err != nil {
			return nil, err
		}
	}
	for _, t := range c.tags {
		specs = append(specs, t)
	}
	if c.prefix != "" {
		options.Prefix = c.prefix
	}
	options.String = text
	options.RemoveAllTags = options.RemoveAllTags || c.removeAll
	options.NumberDoubles = options.NumberDoubles || c.doubles
	options.LowercaseTags = options.LowercaseTags || c.lowercase
	options.RepairValues = options.RepairValues || c.repair
	res, err := tagify.Parse(options, specs...)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	return res, nil
}
