// Command fwire is an interactive encoder: each line of JSON is
// converted into the wire value model and echoed in wire form. With
// -store, \save, \get, \list and \delete operate on a query store.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/andreyvit/fwire"
)

func main() {
	storePath := flag.String("store", "", "path to a query store file")
	flag.Parse()

	var store *fwire.QueryStore
	if *storePath != "" {
		var err error
		store, err = fwire.OpenQueryStore(*storePath, fwire.StoreOptions{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "fwire: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		s, err := line.Prompt("fwire> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "fwire: %v\n", err)
			os.Exit(1)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		line.AppendHistory(s)

		if strings.HasPrefix(s, `\`) {
			if s == `\quit` || s == `\q` {
				return
			}
			if err := command(store, s); err != nil {
				fmt.Fprintf(os.Stderr, "fwire: %v\n", err)
			}
			continue
		}

		wire, err := encodeLine(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fwire: %v\n", err)
			continue
		}
		fmt.Println(string(wire))
	}
}

func encodeLine(s string) ([]byte, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	e, err := fwire.FromJSON(v)
	if err != nil {
		return nil, err
	}
	return fwire.MarshalWire(e), nil
}

func command(store *fwire.QueryStore, s string) error {
	name, rest, _ := strings.Cut(strings.TrimPrefix(s, `\`), " ")
	rest = strings.TrimSpace(rest)
	if store == nil {
		return errors.New("no query store open; start with -store")
	}
	switch name {
	case "save":
		qname, doc, ok := strings.Cut(rest, " ")
		if !ok || qname == "" {
			return errors.New(`usage: \save <name> <json>`)
		}
		wire, err := encodeLine(strings.TrimSpace(doc))
		if err != nil {
			return err
		}
		return store.PutWire(qname, wire)
	case "get":
		if rest == "" {
			return errors.New(`usage: \get <name>`)
		}
		wire, meta, err := store.Get(rest)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t(saved %s, rev %d)\n", wire, meta.SavedAt.Format("2006-01-02 15:04:05"), meta.ModCount)
		return nil
	case "list":
		names, err := store.Names()
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	case "delete":
		if rest == "" {
			return errors.New(`usage: \delete <name>`)
		}
		return store.Delete(rest)
	default:
		return fmt.Errorf("unknown command \\%s", name)
	}
}
