package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/mdouchement/lostfound/internal/config"
	"github.com/mdouchement/lostfound/internal/database"
	"github.com/mdouchement/lostfound/internal/filter"
	"github.com/mdouchement/lostfound/internal/logger"
	"github.com/mdouchement/lostfound/internal/model"
	"github.com/mdouchement/lostfound/internal/seed"
	"github.com/mdouchement/lostfound/internal/server"
	"github.com/mdouchement/lostfound/internal/service"
	"github.com/mdouchement/lostfound/internal/store"
	"github.com/mdouchement/lostfound/internal/upload"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg      string
	criteria model.Criteria
	report   service.ReportParams
	image    string
)

func main() {
	c := &coral.Command{
		Use:     "lostfound",
		Short:   "Lost and found reception desk",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	c.PersistentFlags().StringVarP(&cfg, "config", "c", "", "Configuration file")

	c.AddCommand(initCmd)

	listCmd.Flags().StringVarP(&criteria.Category, "category", "", "", "Filter on category")
	listCmd.Flags().StringVarP(&criteria.Location, "location", "", "", "Filter on last seen zone")
	listCmd.Flags().StringVarP(&criteria.Date, "date", "", "", "Filter on date (YYYY-MM-DD)")
	c.AddCommand(listCmd)

	reportCmd.Flags().StringVarP(&report.Name, "name", "n", "", "Item name")
	reportCmd.Flags().StringVarP(&report.Category, "category", "", "", "Item category")
	reportCmd.Flags().StringVarP(&report.Location, "location", "l", "", "Last seen zone")
	reportCmd.Flags().StringVarP(&report.Date, "date", "d", "", "Date (YYYY-MM-DD)")
	reportCmd.Flags().StringVarP(&report.Description, "description", "", "", "Description")
	reportCmd.Flags().StringVarP(&image, "image", "i", "", "Image file")
	c.AddCommand(reportCmd)

	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

type app struct {
	konf  *config.Config
	log   *logrus.Logger
	store *store.Store
	slot  database.Slot
}

// open loads the configuration and hydrates the store.
func open() (*app, error) {
	konf, err := config.Load(cfg)
	if err != nil {
		return nil, err
	}

	l, err := logger.New(konf.Log.Level, konf.Log.File)
	if err != nil {
		return nil, err
	}

	items, err := seed.Load(konf.SeedPath)
	if err != nil {
		return nil, err
	}

	slot, err := database.Open(konf.Database.Driver, konf.Database.Path, konf.StorageKey)
	if err != nil {
		return nil, errors.Wrap(err, "could not open database")
	}

	s := store.New(slot, items, l)
	s.Hydrate()

	return &app{
		konf:  konf,
		log:   l,
		store: s,
		slot:  slot,
	}, nil
}

func (a *app) Close() error {
	return a.slot.Close()
}

func tabulate(items []model.Item) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tZONE\tFOUND\tIMAGE\tDESCRIPTION")
	for _, item := range items {
		img := "default"
		if item.Image != "" {
			img = "uploaded"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", item.Name, item.Category, item.Location, item.Date, img, item.Description)
	}
	w.Flush()
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the storage with the seed dataset when empty",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()
			s := a.store

			if err = s.LastWriteError(); err != nil {
				return err
			}
			fmt.Printf("%d items held\n", s.Len())
			return nil
		},
	}

	//
	listCmd = &coral.Command{
		Use:   "list",
		Short: "List held items",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()
			s := a.store

			if criteria.Date != "" {
				criteria.Date, err = model.NormalizeDate(criteria.Date)
				if err != nil {
					return errors.Wrap(err, "invalid date")
				}
			}

			items := s.Items()
			filtered := filter.Apply(items, criteria)
			tabulate(filtered)

			if criteria.Empty() {
				fmt.Printf("%d items held\n", len(items))
			} else {
				fmt.Printf("%d of %d items held match\n", len(filtered), len(items))
			}
			return nil
		},
	}

	//
	reportCmd = &coral.Command{
		Use:   "report",
		Short: "Report a lost item",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()
			s := a.store

			var pending *upload.Pending
			if image != "" {
				pending = upload.Open(image, a.konf.Upload.MaxSize)
			}

			r := service.NewReport(s, report, pending, a.konf.Upload.MaxSize)
			if err = r.Execute(context.Background()); err != nil {
				return err
			}
			if err = s.LastWriteError(); err != nil {
				fmt.Println("Warning: item is not persisted:", err)
			}

			fmt.Println("Lost item reported!")
			tabulate([]model.Item{r.Item()})
			return nil
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()
			s := a.store

			konf, l := a.konf, a.log
			engine := server.EchoEngine(server.Controller{
				Version:       version,
				Store:         s,
				Logger:        l,
				CORSOrigins:   konf.CORSOrigins,
				UploadMaxSize: konf.Upload.MaxSize,
			})
			server.PrintRoutes(engine)

			address := konf.Address
			message := "could not run server"
			l.WithFields(logrus.Fields{"address": address, "items": s.Len()}).Info("Server listening")
			parts := strings.Split(address, ":")
			if len(parts) == 2 && parts[0] == "unix" {
				socketFile := parts[1]
				if _, err := os.Stat(socketFile); err == nil {
					l.Infof("Removing existing %s", socketFile)
					os.Remove(socketFile)
				}
				defer os.Remove(socketFile)
				listener, err := net.Listen(parts[0], socketFile)
				if err != nil {
					return err
				}
				return errors.Wrap(engine.Server.Serve(listener), message)
			}
			return errors.Wrap(engine.Start(address), message)
		},
	}
)
