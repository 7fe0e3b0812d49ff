// Package tables describes the TPC-H table set and the flat directory layout
// the data generator produces: one file per table, named <table>.tbl.
package tables

import (
	"io/ioutil"
	"sort"
	"strings"

	"github.com/timescale/tpch-provision/internal/utils"
)

// Extension is the file extension dbgen uses for table files.
const Extension = ".tbl"

// Tables of the TPC-H schema, in the order they are usually listed.
const (
	Customer = "customer"
	Lineitem = "lineitem"
	Nation   = "nation"
	Orders   = "orders"
	Part     = "part"
	Partsupp = "partsupp"
	Region   = "region"
	Supplier = "supplier"
)

// Names returns all TPC-H table names.
func Names() []string {
	return []string{
		Customer,
		Lineitem,
		Nation,
		Orders,
		Part,
		Partsupp,
		Region,
		Supplier,
	}
}

// IsTable reports whether name is a TPC-H table.
func IsTable(name string) bool {
	return utils.IsIn(name, Names())
}

// FileName returns the name of the file holding table.
func FileName(table string) string {
	return table + Extension
}

// TableName returns the table a file name belongs to, or false if the file
// is not a table file.
func TableName(file string) (string, bool) {
	if !strings.HasSuffix(file, Extension) {
		return "", false
	}
	table := strings.TrimSuffix(file, Extension)
	return table, IsTable(table)
}

// Entry is the state of one table within a dataset directory.
type Entry struct {
	Table   string
	File    string
	Present bool
	Size    int64
}

// Inventory lists what a dataset directory holds. It is informational only:
// provisioning never consults it when deciding whether to generate.
type Inventory struct {
	Dir    string
	Tables []Entry
	// Extra holds files that are not TPC-H table files, sorted.
	Extra []string
}

// Scan builds the Inventory of dir.
func Scan(dir string) (*Inventory, error) {
	infos, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	sizes := make(map[string]int64, len(infos))
	inv := &Inventory{Dir: dir}
	for _, info := range infos {
		if info.IsDir() {
			inv.Extra = append(inv.Extra, info.Name()+"/")
			continue
		}
		if table, ok := TableName(info.Name()); ok {
			sizes[table] = info.Size()
			continue
		}
		inv.Extra = append(inv.Extra, info.Name())
	}
	sort.Strings(inv.Extra)

	for _, table := range Names() {
		size, ok := sizes[table]
		inv.Tables = append(inv.Tables, Entry{
			Table:   table,
			File:    FileName(table),
			Present: ok,
			Size:    size,
		})
	}
	return inv, nil
}

// Missing returns the tables that have no file in the directory.
func (inv *Inventory) Missing() []string {
	var missing []string
	for _, e := range inv.Tables {
		if !e.Present {
			missing = append(missing, e.Table)
		}
	}
	return missing
}

// Complete reports whether every table has a file.
func (inv *Inventory) Complete() bool {
	return len(inv.Missing()) == 0
}

// TotalSize is the combined size of all table files.
func (inv *Inventory) TotalSize() int64 {
	var total int64
	for _, e := range inv.Tables {
		total += e.Size
	}
	return total
}
