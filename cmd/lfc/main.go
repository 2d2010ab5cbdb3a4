package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/chzyer/readline"
	"github.com/mdouchement/lostfound/pkg/liblf"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	endpoint string
	criteria liblf.Criteria
	report   liblf.Report
	output   string
)

func main() {
	c := &cobra.Command{
		Use:     "lfc",
		Short:   "Lost and found client",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", env("LFC_ENDPOINT", "http://localhost:5000"), "Lostfound server endpoint")

	listCmd.Flags().StringVar(&criteria.Category, "category", "", "Filter on category")
	listCmd.Flags().StringVar(&criteria.Location, "location", "", "Filter on last seen zone")
	listCmd.Flags().StringVar(&criteria.Date, "date", "", "Filter on date (YYYY-MM-DD)")
	c.AddCommand(listCmd)

	reportCmd.Flags().StringVarP(&report.Name, "name", "n", "", "Item name")
	reportCmd.Flags().StringVar(&report.Category, "category", "", "Item category")
	reportCmd.Flags().StringVarP(&report.Location, "location", "l", "", "Last seen zone")
	reportCmd.Flags().StringVarP(&report.Date, "date", "d", "", "Date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&report.Description, "description", "", "Description")
	reportCmd.Flags().StringVarP(&report.ImagePath, "image", "i", "", "Image file")
	c.AddCommand(reportCmd)

	imageCmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: item-INDEX)")
	c.AddCommand(imageCmd)

	if err := c.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type field struct {
	label string
	value *string
}

// prompt asks the missing required fields on stdin.
func prompt(fields ...field) error {
	for _, f := range fields {
		for strings.TrimSpace(*f.value) == "" {
			line, err := readline.Line(f.label + ": ")
			if err != nil {
				return errors.Wrapf(err, "could not read %s", f.label)
			}
			*f.value = strings.TrimSpace(line)
		}
	}
	return nil
}

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List held items",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := liblf.NewDefaultClient(endpoint)
			if err != nil {
				return err
			}

			items, err := client.ListItems(criteria)
			if err != nil {
				return errors.Wrap(err, "could not list items")
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCATEGORY\tZONE\tFOUND\tDESCRIPTION")
			for _, item := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", item.Name, item.Category, item.Location, item.Date, item.Description)
			}
			return w.Flush()
		},
	}

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Report a lost item",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := liblf.NewDefaultClient(endpoint)
			if err != nil {
				return err
			}

			err = prompt(
				field{"name", &report.Name},
				field{"category", &report.Category},
				field{"last seen zone", &report.Location},
				field{"date (YYYY-MM-DD)", &report.Date},
			)
			if err != nil {
				return err
			}

			item, err := client.Report(report)
			if err != nil {
				return errors.Wrap(err, "could not report item")
			}

			fmt.Printf("Lost item reported: %s (%s, %s)\n", item.Name, item.Location, item.Date)
			return nil
		},
	}

	imageCmd = &cobra.Command{
		Use:   "image INDEX",
		Short: "Download the image of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var index int
			if _, err := fmt.Sscanf(args[0], "%d", &index); err != nil {
				return errors.Errorf("not an index: %s", args[0])
			}

			client, err := liblf.NewDefaultClient(endpoint)
			if err != nil {
				return err
			}

			data, ctype, err := client.Image(index)
			if err != nil {
				return errors.Wrap(err, "could not get image")
			}

			filename := output
			if filename == "" {
				filename = fmt.Sprintf("item-%d%s", index, extension(ctype))
			}

			if err = os.WriteFile(filename, data, 0o644); err != nil {
				return errors.Wrap(err, "could not write image")
			}
			fmt.Println("Image saved as " + filename)
			return nil
		},
	}
)

func extension(ctype string) string {
	switch {
	case strings.HasPrefix(ctype, "image/svg"):
		return ".svg"
	case strings.HasPrefix(ctype, "image/png"):
		return ".png"
	case strings.HasPrefix(ctype, "image/jpeg"):
		return ".jpg"
	case strings.HasPrefix(ctype, "image/gif"):
		return ".gif"
	case strings.HasPrefix(ctype, "image/webp"):
		return ".webp"
	default:
		return ""
	}
}
