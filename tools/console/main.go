package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/asdine/storm/v3"
	"github.com/mdouchement/pantry/internal/database"
	"github.com/mdouchement/pantry/internal/model"
	"github.com/mdouchement/pantry/pkg/stormsql"
	"github.com/mdouchement/pantry/pkg/structs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// go run tools/console/main.go pantry.db " SELECT count(*) FROM items WHERE UserID = 'f2a98ab0-2c40-42b4-be08-da3b771be935' AND UpdatedAt > '2019-02-16 20:52:55';  "
// go run tools/console/main.go pantry.db "SELECT ID, UserAgent, CreatedAt FROM tokens ORDER BY CreatedAt DESC LIMIT 10"

var codec string

func main() {
	c := &cobra.Command{
		Use:   "console DATABASE SQL",
		Short: "SQL console for pantry database",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			option, err := database.StormCodec(codec)
			if err != nil {
				return err
			}

			fmt.Println("Opening", args[0])
			db, err := storm.Open(args[0], option)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			return run(os.Stdout, db, args[1])
		},
	}
	c.Flags().StringVar(&codec, "codec", "", "Storm codec of the database")

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

// tables lists the queryable buckets and how to allocate their records.
var tables = map[string]struct {
	one  func() any
	many func() any
}{
	"users": {
		one:  func() any { return &model.User{} },
		many: func() any { return &[]*model.User{} },
	},
	"tokens": {
		one:  func() any { return &model.Token{} },
		many: func() any { return &[]*model.Token{} },
	},
	"items": {
		one:  func() any { return &model.Item{} },
		many: func() any { return &[]*model.Item{} },
	},
}

func run(w io.Writer, db *storm.DB, sql string) error {
	sc, err := stormsql.ParseSelect(sql)
	if err != nil {
		return err
	}

	table, ok := tables[sc.Tablename]
	if !ok {
		return errors.Errorf("unknown tablename: %s", sc.Tablename)
	}

	//
	// Prepare request
	//

	query := db.Select(sc.Matcher)
	if sc.Skip > 0 {
		query.Skip(sc.Skip)
	}
	if sc.Limit > 0 {
		query.Limit(sc.Limit)
	}
	if len(sc.OrderBy) > 0 {
		query.OrderBy(sc.OrderBy...)
		if sc.OrderByReversed {
			query.Reverse()
		}
	}

	// Execute

	if sc.Count {
		n, err := query.Count(table.one())
		if err != nil {
			return errors.Wrap(err, "could not perform query")
		}

		_, err = fmt.Fprintln(w, "Count:", n)
		return err
	}

	records := table.many()
	err = query.Find(records)
	if errors.Is(err, storm.ErrNotFound) {
		_, err = fmt.Fprintln(w, "[]")
		return err
	}
	if err != nil {
		return errors.Wrap(err, "could not perform query")
	}

	if len(sc.SelectedFields) == 0 {
		return jsondump(w, records)
	}

	rows, err := project(records, sc.SelectedFields)
	if err != nil {
		return err
	}
	return jsondump(w, rows)
}

func project(records any, fields []string) ([]map[string]any, error) {
	var models []model.Model
	switch v := records.(type) {
	case *[]*model.User:
		for _, m := range *v {
			models = append(models, m)
		}
	case *[]*model.Token:
		for _, m := range *v {
			models = append(models, m)
		}
	case *[]*model.Item:
		for _, m := range *v {
			models = append(models, m)
		}
	}

	rows := make([]map[string]any, 0, len(models))
	for _, m := range models {
		row, err := structs.Project(m, fields...)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row.Map())
	}
	return rows, nil
}

func jsondump(w io.Writer, v any) error {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not serialize records")
	}

	_, err = fmt.Fprintln(w, string(d))
	return err
}
