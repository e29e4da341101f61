// Command saveinspect dumps the assignment blobs in a savedata container:
// the stored data ids, and per entry the building, reason and vehicle names,
// without needing the catalogs loaded.
package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/olekukonko/tablewriter"

	"vehicleselect/internal/persistence/savedata"
	"vehicleselect/internal/vehicles"
)

func main() {
	var (
		path   = flag.String("save", "data/savedata.db", "savedata container path")
		dataID = flag.String("id", savedata.DataID, "blob to dump")
		list   = flag.Bool("list", false, "list stored data ids and exit")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[saveinspect] ", 0)

	container, err := savedata.Open(*path)
	if err != nil {
		logger.Fatalf("open savedata: %v", err)
	}
	defer container.Close()

	ctx := context.Background()

	if *list {
		ids, err := container.DataIDs(ctx)
		if err != nil {
			logger.Fatalf("list data ids: %v", err)
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return
	}

	payload, ok, err := container.Load(ctx, *dataID)
	if err != nil {
		logger.Fatalf("load %s: %v", *dataID, err)
	}
	if !ok {
		logger.Fatalf("no blob named %q", *dataID)
	}

	r := bytes.NewReader(payload)
	var version int32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		logger.Fatalf("read version: %v", err)
	}
	entries, err := vehicles.DecodeDump(r)
	if err != nil {
		logger.Fatalf("decode %s: %v", *dataID, err)
	}

	fmt.Printf("%s: version %d, %d entries\n", *dataID, version, len(entries))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Building", "Reason", "Vehicles"})
	for _, e := range entries {
		for i, name := range e.Names {
			row := []string{"", "", name}
			if i == 0 {
				row[0] = fmt.Sprintf("%d", e.BuildingID)
				row[1] = e.Reason.String()
			}
			table.Append(row)
		}
	}
	table.Render()
}
