package cli

import (
	"time"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/gentoomaniac/svn-backup/pkg/db"
	"github.com/gentoomaniac/svn-backup/pkg/dump"
	"github.com/gosuri/uitable"
)

const maxColWidth = 80

func SeriesTable(series []dump.Series) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = maxColWidth
	table.AddRow("REPOSITORY", "LOW", "HIGH", "SIZE", "STATUS", "FILE")
	for _, s := range series {
		for _, e := range s.Entries {
			status := "keep"
			if e.Overlapped {
				status = color.YellowString("overlapped")
			}
			table.AddRow(e.Repository, e.Low, e.High, units.HumanSize(float64(e.Size)), status, e.Path)
		}
	}
	return table
}

func RemovalTable(removals []*db.Removal) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = maxColWidth
	table.AddRow("REMOVED", "REPOSITORY", "LOW", "HIGH", "SIZE", "FILE")
	for _, r := range removals {
		when := time.Unix(r.Timestamp, 0).Format(time.RFC3339)
		table.AddRow(when, r.Repository, r.Low, r.High, units.HumanSize(float64(r.Size)), r.Path)
	}
	return table
}
