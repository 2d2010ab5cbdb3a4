package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/mdouchement/lostfound/internal/database"
	"github.com/mdouchement/lostfound/internal/query"
	"github.com/mdouchement/lostfound/internal/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// go run tools/console/main.go --driver storm ./data " SELECT name, date FROM items WHERE category = 'Electronics' AND date >= '2024-05-01' ORDER BY date DESC LIMIT 5;  "

var (
	driver string
	key    string
)

func main() {
	c := &cobra.Command{
		Use:   "console PATH SQL",
		Short: "SQL console for the stored lost items",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			sc, err := query.Parse(args[1])
			if err != nil {
				return err
			}

			fmt.Println("Opening", args[0])
			slot, err := database.Open(driver, args[0], key)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer slot.Close()

			// The slot is read as is, no seed fallback.
			snapshot := store.Read(slot)
			if snapshot.Outcome != store.Loaded {
				return errors.Errorf("no usable snapshot: %s", snapshot.Outcome)
			}

			if sc.Count {
				matched, err := sc.Match(snapshot.Items)
				if err != nil {
					return errors.Wrap(err, "could not perform query")
				}
				fmt.Println("Count:", len(matched))
				return nil
			}

			items, err := sc.Run(snapshot.Items)
			if err != nil {
				return errors.Wrap(err, "could not perform query")
			}

			jsondump(sc.Rows(items))
			return nil
		},
	}
	c.Flags().StringVar(&driver, "driver", database.DriverStorm, "Database driver (storm, sqlite, file)")
	c.Flags().StringVar(&key, "key", "lostItems", "Storage key of the item list")

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func jsondump(v any) {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(d))
}
